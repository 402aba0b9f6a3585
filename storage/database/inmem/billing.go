package inmemdb

import (
	"github.com/google/uuid"

	"github.com/trezcool/educrm/core/billing"
)

type billingRepository struct {
	db *billingTable
}

var _ billing.Repository = (*billingRepository)(nil) // interface compliance check

func NewBillingRepository(db *DB) billing.Repository {
	return &billingRepository{db: db.billing}
}

func (repo *billingRepository) CreatePayment(pmt billing.Payment) (billing.Payment, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	pmt.ID = uuid.New().String()
	repo.db.payments[pmt.ID] = &pmt
	repo.db.order = append(repo.db.order, pmt.ID)
	return pmt, nil
}

func (repo *billingRepository) QueryAllPayments() ([]billing.Payment, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	payments := make([]billing.Payment, 0, len(repo.db.order))
	for _, id := range repo.db.order {
		if pmt, ok := repo.db.payments[id]; ok {
			payments = append(payments, *pmt)
		}
	}
	return payments, nil
}

func (repo *billingRepository) GetPaymentByID(id string) (billing.Payment, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if pmt, ok := repo.db.payments[id]; ok {
		return *pmt, nil
	}
	return billing.Payment{}, billing.ErrPaymentNotFound
}

func (repo *billingRepository) UpdatePayment(pmt billing.Payment, amount *float64) (billing.Payment, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	// only save set fields
	orig, ok := repo.db.payments[pmt.ID]
	if !ok {
		return billing.Payment{}, billing.ErrPaymentNotFound
	}
	if pmt.Status != "" {
		orig.Status = pmt.Status
	}
	if pmt.Method != "" {
		orig.Method = pmt.Method
	}
	if amount != nil {
		orig.Amount = *amount
	}
	return *orig, nil
}

func (repo *billingRepository) CreateProduct(prd billing.Product) (billing.Product, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	prd.ID = uuid.New().String()
	repo.db.products[prd.ID] = &prd
	return prd, nil
}

func (repo *billingRepository) QueryAllProducts() ([]billing.Product, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	products := make([]billing.Product, 0, len(repo.db.products))
	for _, prd := range repo.db.products {
		products = append(products, *prd)
	}
	return products, nil
}

func (repo *billingRepository) GetProductByID(id string) (billing.Product, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if prd, ok := repo.db.products[id]; ok {
		return *prd, nil
	}
	return billing.Product{}, billing.ErrProductNotFound
}

func (repo *billingRepository) UpdateProduct(prd billing.Product, price *float64, stock *int) (billing.Product, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	// only save set fields
	orig, ok := repo.db.products[prd.ID]
	if !ok {
		return billing.Product{}, billing.ErrProductNotFound
	}
	if prd.Name != "" {
		orig.Name = prd.Name
	}
	if prd.Description != "" {
		orig.Description = prd.Description
	}
	if prd.Category != "" {
		orig.Category = prd.Category
	}
	if prd.Image != "" {
		orig.Image = prd.Image
	}
	if price != nil {
		orig.Price = *price
	}
	if stock != nil {
		orig.Stock = *stock
	}
	return *orig, nil
}

func (repo *billingRepository) DeleteProductByID(id string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	delete(repo.db.products, id)
	return nil
}
