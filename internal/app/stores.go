package app

import (
	"invoicedesk/internal/model"
	"invoicedesk/internal/repository"
	"invoicedesk/internal/repository/memory"

	"gorm.io/gorm"
)

// Stores is every repository the services need, backed by one driver.
type Stores struct {
	Users            repository.UserRepository
	Files            repository.FileRepository
	Events           repository.AnalyticsRepository
	Tx               repository.TransactionManager
	Invoices         repository.DocumentRepository[model.Invoice]
	ProformaInvoices repository.DocumentRepository[model.ProformaInvoice]
	LocalBills       repository.DocumentRepository[model.LocalBill]
	LocalChalans     repository.DocumentRepository[model.LocalChalan]
	LocalProformas   repository.DocumentRepository[model.LocalProforma]
}

// PostgresStores backs every repository with db.
func PostgresStores(db *gorm.DB) *Stores {
	return &Stores{
		Users:            repository.NewUserRepository(db),
		Files:            repository.NewFileRepository(db),
		Events:           repository.NewAnalyticsRepository(db),
		Tx:               repository.NewTransactionManager(db),
		Invoices:         repository.NewDocumentRepository[model.Invoice](db),
		ProformaInvoices: repository.NewDocumentRepository[model.ProformaInvoice](db),
		LocalBills:       repository.NewDocumentRepository[model.LocalBill](db),
		LocalChalans:     repository.NewDocumentRepository[model.LocalChalan](db),
		LocalProformas:   repository.NewDocumentRepository[model.LocalProforma](db),
	}
}

// MemoryStores keeps everything in process; data is lost on exit.
func MemoryStores() *Stores {
	return &Stores{
		Users:            memory.NewUserRepository(nil),
		Files:            memory.NewFileRepository(nil),
		Events:           memory.NewAnalyticsRepository(nil),
		Tx:               &memory.TxManager{},
		Invoices:         memory.NewDocumentRepository[model.Invoice](nil),
		ProformaInvoices: memory.NewDocumentRepository[model.ProformaInvoice](nil),
		LocalBills:       memory.NewDocumentRepository[model.LocalBill](nil),
		LocalChalans:     memory.NewDocumentRepository[model.LocalChalan](nil),
		LocalProformas:   memory.NewDocumentRepository[model.LocalProforma](nil),
	}
}
