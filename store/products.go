package store

import (
	"cblls_server/storage"
	"cblls_server/structs"
	"context"
	"encoding/json"
	"math/rand"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
)

// Products returns the current durable snapshot. A missing or corrupt
// document is treated as an empty catalog, never as an error.
func (s *Store) Products() []structs.Product {
	data, found, err := s.backend.Get(context.Background(), storage.KeyProducts)
	if err != nil {
		s.logger.Warn("Failed to read products document", gecho.Field("error", err))
		return []structs.Product{}
	}
	if !found {
		return []structs.Product{}
	}

	var products []structs.Product
	if err := json.Unmarshal(data, &products); err != nil {
		s.logger.Warn("Discarding corrupt products document", gecho.Field("error", err))
		return []structs.Product{}
	}
	return products
}

// SaveProduct upserts the product by identifier, persists the whole
// collection, and only then notifies product subscribers. A product
// with the zero identifier gets a fresh one. When variants are present,
// aggregate stock and reference price are recomputed on every save and
// never trusted from input.
func (s *Store) SaveProduct(ctx context.Context, product structs.Product) (structs.Product, error) {
	s.mu.Lock()

	products := s.Products()

	if product.ID == 0 {
		product.ID = newProductID(products)
	}

	if len(product.Variants) > 0 {
		total := 0
		for i := range product.Variants {
			if product.Variants[i].ID == "" {
				product.Variants[i].ID = uuid.New().String()
			}
			total += product.Variants[i].Stock
		}
		product.Stock = total
		product.Price = product.Variants[0].Price
	}

	index := -1
	for i := range products {
		if products[i].ID == product.ID {
			index = i
			break
		}
	}
	if index >= 0 {
		products[index] = product
	} else {
		products = append(products, product)
	}

	data, err := json.Marshal(products)
	if err != nil {
		s.mu.Unlock()
		return structs.Product{}, err
	}

	// the write is attempted against the serialized copy only, so a
	// rejected write leaves the stored collection untouched
	if err := s.backend.Set(ctx, storage.KeyProducts, data); err != nil {
		s.mu.Unlock()
		s.logger.Warn("Product write rejected",
			gecho.Field("error", err),
			gecho.Field("product_id", product.ID),
		)
		return structs.Product{}, err
	}

	s.mu.Unlock()

	s.productListeners.notify(products)
	return product, nil
}

// DeleteProduct removes the product by identifier, persists and
// notifies. A missing identifier is a no-op, not an error; subscribers
// are still notified with the (unchanged) collection.
func (s *Store) DeleteProduct(ctx context.Context, id int64) error {
	s.mu.Lock()

	products := s.Products()
	remaining := make([]structs.Product, 0, len(products))
	for _, p := range products {
		if p.ID != id {
			remaining = append(remaining, p)
		}
	}

	data, err := json.Marshal(remaining)
	if err != nil {
		s.mu.Unlock()
		return err
	}

	if err := s.backend.Set(ctx, storage.KeyProducts, data); err != nil {
		s.mu.Unlock()
		s.logger.Warn("Product delete rejected",
			gecho.Field("error", err),
			gecho.Field("product_id", id),
		)
		return err
	}

	s.mu.Unlock()

	s.productListeners.notify(remaining)
	return nil
}

// newProductID derives an identifier from the current time plus a
// randomness suffix, re-drawing on collision so rapid successive
// creates within one time-resolution tick stay pairwise distinct.
func newProductID(existing []structs.Product) int64 {
	taken := make(map[int64]bool, len(existing))
	for _, p := range existing {
		taken[p.ID] = true
	}

	for {
		id := time.Now().UnixMilli()*1000 + rand.Int63n(1000)
		if !taken[id] {
			return id
		}
	}
}
