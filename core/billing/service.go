package billing

import (
	"errors"
	"fmt"
	"net/mail"
	"time"

	"github.com/trezcool/educrm/core"
	"github.com/trezcool/educrm/core/activity"
	"github.com/trezcool/educrm/core/student"
)

var (
	// errors
	ErrPaymentNotFound = errors.New("payment not found")
	ErrProductNotFound = errors.New("product not found")
)

type (
	Repository interface {
		CreatePayment(pmt Payment) (Payment, error)
		QueryAllPayments() ([]Payment, error)
		GetPaymentByID(id string) (Payment, error)
		// UpdatePayment merges the set fields of pmt into the stored entity.
		UpdatePayment(pmt Payment, amount *float64) (Payment, error)

		CreateProduct(prd Product) (Product, error)
		QueryAllProducts() ([]Product, error)
		GetProductByID(id string) (Product, error)
		// UpdateProduct merges the set fields of prd into the stored entity.
		UpdateProduct(prd Product, price *float64, stock *int) (Product, error)
		// DeleteProductByID is a no-op on unknown ids.
		DeleteProductByID(id string) error
	}

	Service struct {
		repo        Repository
		activitySvc *activity.Service
		mailSvc     core.EmailService
		conf        *core.Config
	}
)

func NewService(repo Repository, activitySvc *activity.Service, mailSvc core.EmailService, conf *core.Config) *Service {
	return &Service{repo: repo, activitySvc: activitySvc, mailSvc: mailSvc, conf: conf}
}

// payments

func (svc *Service) AddPayment(np NewPayment) (Payment, error) {
	if err := np.Validate(); err != nil {
		return Payment{}, err
	}
	pmt := Payment{
		StudentID:   np.StudentID,
		StudentName: np.StudentName, // snapshot; intentionally not refreshed on student rename
		Amount:      np.Amount,
		Date:        np.Date.UTC(),
		Status:      np.Status,
		Method:      np.Method,
	}
	pmt, err := svc.repo.CreatePayment(pmt)
	if err != nil {
		return Payment{}, err
	}
	if _, err := svc.activitySvc.Log(activity.TypePayment, "Payment received from %s", pmt.StudentName); err != nil {
		return Payment{}, err
	}
	return pmt, nil
}

func (svc *Service) QueryAllPayments() ([]Payment, error) {
	return svc.repo.QueryAllPayments()
}

func (svc *Service) UpdatePayment(id string, up UpdatePayment) (Payment, error) {
	if err := up.Validate(); err != nil {
		return Payment{}, err
	}
	pmt := Payment{
		ID:     id,
		Status: up.Status,
		Method: up.Method,
	}
	return svc.repo.UpdatePayment(pmt, up.Amount)
}

// TotalRevenue sums the amounts of all completed payments.
func (svc *Service) TotalRevenue() (float64, error) {
	payments, err := svc.repo.QueryAllPayments()
	if err != nil {
		return 0, err
	}
	return TotalRevenue(payments), nil
}

// products

func (svc *Service) AddProduct(np NewProduct) (Product, error) {
	if err := np.Validate(); err != nil {
		return Product{}, err
	}
	prd := Product{
		Name:        np.Name,
		Description: np.Description,
		Price:       np.Price,
		Category:    np.Category,
		Stock:       np.Stock,
		Image:       np.Image,
	}
	prd, err := svc.repo.CreateProduct(prd)
	if err != nil {
		return Product{}, err
	}
	if _, err := svc.activitySvc.Log(activity.TypeProduct, "%s added to shop", prd.Name); err != nil {
		return Product{}, err
	}
	return prd, nil
}

func (svc *Service) QueryAllProducts() ([]Product, error) {
	return svc.repo.QueryAllProducts()
}

func (svc *Service) UpdateProduct(id string, up UpdateProduct) (Product, error) {
	if err := up.Validate(); err != nil {
		return Product{}, err
	}
	prd := Product{
		ID:          id,
		Name:        up.Name,
		Description: up.Description,
		Category:    up.Category,
		Image:       up.Image,
	}
	return svc.repo.UpdateProduct(prd, up.Price, up.Stock)
}

// DeleteProduct removes the product; it is a no-op if the id is unknown.
func (svc *Service) DeleteProduct(id string) error {
	prd, err := svc.repo.GetProductByID(id)
	if err != nil {
		if errors.Is(err, ErrProductNotFound) {
			return nil
		}
		return err
	}
	if err := svc.repo.DeleteProductByID(id); err != nil {
		return err
	}
	if _, err := svc.activitySvc.Log(activity.TypeProduct, "%s removed from shop", prd.Name); err != nil {
		return err
	}
	return nil
}

// SendOverdueReminders emails every student whose payment status is overdue.
// Students without an email address are skipped, as are students who joined
// within the configured grace window. Returns the number of reminders handed
// to the email service.
func (svc *Service) SendOverdueReminders(students []student.Student) int {
	cutoff := time.Now().UTC().Add(-svc.conf.OverdueReminderGrace)

	var sent int
	for _, std := range students {
		if std.PaymentStatus != student.PaymentOverdue || std.Email == "" {
			continue
		}
		if std.JoinDate.After(cutoff) {
			continue
		}
		msg := &core.EmailMessage{
			To:           []mail.Address{{Name: std.Name, Address: std.Email}},
			Subject:      "Payment overdue",
			TemplateName: "payment_reminder",
			TemplateData: struct {
				Name   string
				Course string
				Fee    string
			}{std.Name, std.Course, fmt.Sprintf("%.2f", std.Fee)},
		}
		svc.mailSvc.SendMessages(msg)
		sent++
	}
	return sent
}

// TotalRevenue sums the amounts of completed payments; pending and failed
// payments do not count.
func TotalRevenue(payments []Payment) float64 {
	var total float64
	for _, pmt := range payments {
		if pmt.Status == PaymentCompleted {
			total += pmt.Amount
		}
	}
	return total
}
