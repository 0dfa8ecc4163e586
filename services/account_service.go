package services

import (
	"cblls_server/lib"
	"cblls_server/storage"
	"cblls_server/structs"
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
	"golang.org/x/crypto/argon2"
)

var DefaultParams = &structs.ArgonParams{
	Memory:  64 * 1024, // 64 MB
	Time:    1,
	Threads: 4,
	KeyLen:  32,
	SaltLen: 16,
}

// AccountService is the identity provider behind the store: it owns
// account records and one-shot tokens, both persisted as documents in
// the same durable backend as the catalog.
type AccountService struct {
	mu           sync.Mutex // serializes account/token read-modify-write cycles
	logger       *gecho.Logger
	cfg          *structs.Config
	backend      storage.Backend
	emailService *EmailService
}

func NewAccountService(cfg *structs.Config, logger *gecho.Logger, backend storage.Backend, emailService *EmailService) *AccountService {
	return &AccountService{
		logger:       logger,
		cfg:          cfg,
		backend:      backend,
		emailService: emailService,
	}
}

// SignIn checks the credential pair against the stored account records.
// Both an unknown email and a wrong password map to ErrInvalidCredentials
// so callers cannot probe for account existence.
func (as *AccountService) SignIn(ctx context.Context, email, password string) (*structs.User, error) {
	startTime := time.Now()

	if len(password) < as.cfg.Auth.MinPasswordLength {
		return nil, lib.ErrWeakPassword
	}

	as.mu.Lock()
	defer as.mu.Unlock()

	accounts, err := as.loadAccounts(ctx)
	if err != nil {
		as.logger.Error("Failed to load accounts during login", gecho.Field("error", err))
		return nil, lib.ErrInvalidCredentials
	}

	index := findAccount(accounts, email)
	if index < 0 {
		as.logger.Debug("Account not found during login attempt", gecho.Field("identifier", email))
		return nil, lib.ErrInvalidCredentials
	}

	valid, err := as.VerifyPassword(password, accounts[index].PasswordHash)
	if err != nil {
		as.logger.Error("Failed to verify password hash",
			gecho.Field("error", err),
			gecho.Field("uid", accounts[index].Uid),
		)
		return nil, err
	}
	if !valid {
		as.logger.Debug("Invalid password attempt",
			gecho.Field("identifier", email),
			gecho.Field("uid", accounts[index].Uid),
		)
		return nil, lib.ErrInvalidCredentials
	}

	// best effort; a failed last-login write must not fail the login
	accounts[index].LastLogin = time.Now()
	if err := as.saveAccounts(ctx, accounts); err != nil {
		as.logger.Warn("Failed to update last login", gecho.Field("error", err), gecho.Field("uid", accounts[index].Uid))
	}

	elapsedTime := time.Since(startTime)
	as.logger.Debug("User logged in successfully", gecho.Field("uid", accounts[index].Uid), gecho.Field("elapsed_time_ms", elapsedTime.Milliseconds()))

	return accountToUser(&accounts[index]), nil
}

// SignUp creates a new account. The admin role comes from the configured
// allow-list, never from a source-embedded address.
func (as *AccountService) SignUp(ctx context.Context, name, email, password string) (*structs.User, error) {
	if len(password) < as.cfg.Auth.MinPasswordLength {
		return nil, lib.ErrWeakPassword
	}

	passwordHash, err := as.HashPassword(password, DefaultParams)
	if err != nil {
		as.logger.Error("Failed to hash password", gecho.Field("error", err))
		return nil, err
	}

	as.mu.Lock()
	defer as.mu.Unlock()

	accounts, err := as.loadAccounts(ctx)
	if err != nil {
		as.logger.Error("Failed to load accounts during registration", gecho.Field("error", err))
		return nil, err
	}

	if findAccount(accounts, email) >= 0 {
		as.logger.Warn("Registration failed - duplicate account", gecho.Field("identifier", email))
		return nil, lib.ErrDuplicateAccount
	}

	account := structs.Account{
		Uid:          uuid.New().String(),
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
		Role:         as.roleFor(email),
		// without email dispatch there is no verification loop, so the
		// account starts verified (the local-provider behavior)
		Verified:  !as.cfg.Email.Enabled,
		CreatedAt: time.Now(),
	}

	accounts = append(accounts, account)
	if err := as.saveAccounts(ctx, accounts); err != nil {
		as.logger.Error("Failed to persist new account", gecho.Field("error", err), gecho.Field("identifier", email))
		return nil, err
	}

	as.logger.Debug("Account registered", gecho.Field("uid", account.Uid), gecho.Field("role", account.Role))

	if as.cfg.Email.Enabled {
		go func() {
			as.mu.Lock()
			defer as.mu.Unlock()
			if err := as.dispatchVerification(context.Background(), account); err != nil {
				as.logger.Error("Failed to send verification email", gecho.Field("error", err), gecho.Field("uid", account.Uid))
			}
		}()
	}

	return accountToUser(&account), nil
}

// Lookup returns a fresh user snapshot for the given uid.
func (as *AccountService) Lookup(ctx context.Context, uid string) (*structs.User, error) {
	as.mu.Lock()
	defer as.mu.Unlock()

	accounts, err := as.loadAccounts(ctx)
	if err != nil {
		return nil, err
	}
	for i := range accounts {
		if accounts[i].Uid == uid {
			return accountToUser(&accounts[i]), nil
		}
	}
	return nil, lib.ErrNotFound
}

// VerifyEmail consumes a verification token and flips the account's
// verification flag.
func (as *AccountService) VerifyEmail(ctx context.Context, uid, token string) error {
	as.mu.Lock()
	defer as.mu.Unlock()

	tokens, err := as.loadTokens(ctx)
	if err != nil {
		return err
	}

	record, ok := tokens[token]
	if !ok || record.Uid != uid || record.Purpose != structs.TokenVerifyEmail {
		as.logger.Warn("Email verification token not found", gecho.Field("uid", uid))
		return lib.ErrInvalidToken
	}
	if time.Now().After(record.ExpiresAt) {
		as.logger.Warn("Email verification token has expired", gecho.Field("uid", uid), gecho.Field("expires_at", record.ExpiresAt))
		return lib.ErrExpiredToken
	}

	accounts, err := as.loadAccounts(ctx)
	if err != nil {
		return err
	}
	updated := false
	for i := range accounts {
		if accounts[i].Uid == uid {
			accounts[i].Verified = true
			updated = true
			break
		}
	}
	if !updated {
		return lib.ErrNotFound
	}
	if err := as.saveAccounts(ctx, accounts); err != nil {
		return err
	}

	delete(tokens, token)
	if err := as.saveTokens(ctx, tokens); err != nil {
		as.logger.Warn("Failed to delete used verification token", gecho.Field("error", err), gecho.Field("uid", uid))
	}

	as.logger.Info("Email verified successfully", gecho.Field("uid", uid))
	return nil
}

// ResendVerification issues a fresh verification token for an
// unverified account.
func (as *AccountService) ResendVerification(ctx context.Context, email string) error {
	as.mu.Lock()
	defer as.mu.Unlock()

	accounts, err := as.loadAccounts(ctx)
	if err != nil {
		return err
	}
	index := findAccount(accounts, email)
	if index < 0 {
		return lib.ErrNotFound
	}
	if accounts[index].Verified {
		return nil
	}
	return as.dispatchVerification(ctx, accounts[index])
}

// SendPasswordReset dispatches a reset link. An unknown email is
// deliberately not an error so the endpoint cannot probe for accounts.
func (as *AccountService) SendPasswordReset(ctx context.Context, email string) error {
	as.mu.Lock()
	defer as.mu.Unlock()

	accounts, err := as.loadAccounts(ctx)
	if err != nil {
		return err
	}
	index := findAccount(accounts, email)
	if index < 0 {
		as.logger.Debug("Password reset requested for unknown account", gecho.Field("identifier", email))
		return nil
	}

	token, err := as.storeToken(ctx, accounts[index].Uid, structs.TokenResetPassword, as.cfg.Email.ResetTokenExpiry)
	if err != nil {
		return err
	}

	if as.emailService == nil || !as.cfg.Email.Enabled {
		as.logger.Debug("Email dispatch disabled, skipping password reset mail", gecho.Field("uid", accounts[index].Uid))
		return nil
	}
	return as.emailService.SendPasswordResetEmail(&accounts[index], token)
}

// ResetPassword consumes a reset token and replaces the password hash.
func (as *AccountService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if len(newPassword) < as.cfg.Auth.MinPasswordLength {
		return lib.ErrWeakPassword
	}

	as.mu.Lock()
	defer as.mu.Unlock()

	tokens, err := as.loadTokens(ctx)
	if err != nil {
		return err
	}
	record, ok := tokens[token]
	if !ok || record.Purpose != structs.TokenResetPassword {
		return lib.ErrInvalidToken
	}
	if time.Now().After(record.ExpiresAt) {
		return lib.ErrExpiredToken
	}

	passwordHash, err := as.HashPassword(newPassword, DefaultParams)
	if err != nil {
		return err
	}

	accounts, err := as.loadAccounts(ctx)
	if err != nil {
		return err
	}
	updated := false
	for i := range accounts {
		if accounts[i].Uid == record.Uid {
			accounts[i].PasswordHash = passwordHash
			updated = true
			break
		}
	}
	if !updated {
		return lib.ErrNotFound
	}
	if err := as.saveAccounts(ctx, accounts); err != nil {
		return err
	}

	delete(tokens, token)
	if err := as.saveTokens(ctx, tokens); err != nil {
		as.logger.Warn("Failed to delete used reset token", gecho.Field("error", err), gecho.Field("uid", record.Uid))
	}

	as.logger.Info("Password reset completed", gecho.Field("uid", record.Uid))
	return nil
}

// roleFor assigns the role from the configured admin allow-list.
func (as *AccountService) roleFor(email string) structs.Role {
	for _, admin := range as.cfg.Auth.AdminEmails {
		if strings.EqualFold(strings.TrimSpace(admin), email) {
			return structs.RoleAdmin
		}
	}
	return structs.RoleClient
}

func (as *AccountService) dispatchVerification(ctx context.Context, account structs.Account) error {
	token, err := as.storeToken(ctx, account.Uid, structs.TokenVerifyEmail, as.cfg.Email.VerificationTokenExpiry)
	if err != nil {
		return err
	}
	if as.emailService == nil || !as.cfg.Email.Enabled {
		return nil
	}
	return as.emailService.SendVerificationEmail(&account, token)
}

// storeToken creates, persists and returns a fresh one-shot token.
func (as *AccountService) storeToken(ctx context.Context, uid string, purpose structs.TokenPurpose, expiry time.Duration) (string, error) {
	token, err := lib.GenerateRandomToken()
	if err != nil {
		as.logger.Error("Failed to generate account token", gecho.Field("error", err))
		return "", err
	}

	tokens, err := as.loadTokens(ctx)
	if err != nil {
		return "", err
	}
	tokens[token] = structs.AccountToken{
		Token:     token,
		Uid:       uid,
		Purpose:   purpose,
		ExpiresAt: time.Now().Add(expiry),
		CreatedAt: time.Now(),
	}
	if err := as.saveTokens(ctx, tokens); err != nil {
		return "", err
	}
	return token, nil
}

func (as *AccountService) loadAccounts(ctx context.Context) ([]structs.Account, error) {
	data, found, err := as.backend.Get(ctx, storage.KeyAccounts)
	if err != nil {
		return nil, err
	}
	if !found {
		return []structs.Account{}, nil
	}

	var accounts []structs.Account
	if err := json.Unmarshal(data, &accounts); err != nil {
		as.logger.Warn("Discarding corrupt accounts document", gecho.Field("error", err))
		return []structs.Account{}, nil
	}
	return accounts, nil
}

func (as *AccountService) saveAccounts(ctx context.Context, accounts []structs.Account) error {
	data, err := json.Marshal(accounts)
	if err != nil {
		return err
	}
	return as.backend.Set(ctx, storage.KeyAccounts, data)
}

func (as *AccountService) loadTokens(ctx context.Context) (map[string]structs.AccountToken, error) {
	data, found, err := as.backend.Get(ctx, storage.KeyTokens)
	if err != nil {
		return nil, err
	}
	if !found {
		return map[string]structs.AccountToken{}, nil
	}

	var tokens map[string]structs.AccountToken
	if err := json.Unmarshal(data, &tokens); err != nil {
		as.logger.Warn("Discarding corrupt tokens document", gecho.Field("error", err))
		return map[string]structs.AccountToken{}, nil
	}
	return tokens, nil
}

func (as *AccountService) saveTokens(ctx context.Context, tokens map[string]structs.AccountToken) error {
	data, err := json.Marshal(tokens)
	if err != nil {
		return err
	}
	return as.backend.Set(ctx, storage.KeyTokens, data)
}

func findAccount(accounts []structs.Account, email string) int {
	for i := range accounts {
		if strings.EqualFold(accounts[i].Email, email) {
			return i
		}
	}
	return -1
}

func accountToUser(account *structs.Account) *structs.User {
	return &structs.User{
		Uid:      account.Uid,
		Email:    account.Email,
		Name:     account.Name,
		Verified: account.Verified,
		Role:     account.Role,
	}
}

// HashPassword hashes a plain-text password and returns a string and possible error
func (as *AccountService) HashPassword(password string, p *structs.ArgonParams) (string, error) {
	salt, err := generateSalt(p.SaltLen)
	if err != nil {
		return "", err
	}
	hash := argon2.IDKey([]byte(password), salt, p.Time, p.Memory, p.Threads, p.KeyLen)
	b64Salt := base64.RawStdEncoding.EncodeToString(salt)
	b64Hash := base64.RawStdEncoding.EncodeToString(hash)
	// format: $argon2id$v=19$m=65536,t=1,p=4$<salt>$<hash>
	params := fmt.Sprintf("m=%d,t=%d,p=%d", p.Memory, p.Time, p.Threads)
	encoded := fmt.Sprintf("$argon2id$v=19$%s$%s$%s", params, b64Salt, b64Hash)
	return encoded, nil
}

func generateSalt(n uint32) ([]byte, error) {
	b := make([]byte, n)
	_, err := rand.Read(b)
	return b, err
}

// VerifyPassword verifies a plain-text password against a hashed password
func (as *AccountService) VerifyPassword(password, hashedPassword string) (bool, error) {
	parts, err := lib.DecodeArgon2Hash(hashedPassword)
	if err != nil {
		return false, err
	}

	hash := argon2.IDKey([]byte(password), parts.Salt, parts.Time, parts.Memory, parts.Threads, parts.KeyLen)

	return lib.SecureCompare(hash, parts.Hash), nil
}

// GenerateAccessToken issues the HTTP session cookie token for the user
func (as *AccountService) GenerateAccessToken(user *structs.User) (string, error) {
	return lib.SignToken(user, as.GetAccessTokenExpiration(), as.cfg.Auth.AccessTokenSecret)
}

// GetAccessTokenExpiration returns the expiration time for access tokens
func (as *AccountService) GetAccessTokenExpiration() time.Time {
	return time.Now().Add(as.cfg.Auth.AccessTokenExpiry)
}

// GenerateRefreshToken issues the long-lived refresh token for the user
func (as *AccountService) GenerateRefreshToken(user *structs.User) (string, error) {
	return lib.SignToken(user, as.GetRefreshTokenExpiration(), as.cfg.Auth.RefreshTokenSecret)
}

// GetRefreshTokenExpiration returns the expiration time for refresh tokens
func (as *AccountService) GetRefreshTokenExpiration() time.Time {
	return time.Now().Add(as.cfg.Auth.RefreshTokenExpiry)
}

func (as *AccountService) GetAccessTokenSecret() string {
	return as.cfg.Auth.AccessTokenSecret
}

func (as *AccountService) GetRefreshTokenSecret() string {
	return as.cfg.Auth.RefreshTokenSecret
}
