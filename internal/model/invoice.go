package model

import (
	"gorm.io/datatypes"
)

// LineItem is a quantity/rate/amount row used by invoices and local bills.
// Note rows are description-only and never count toward totals.
type LineItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Rate        float64 `json:"rate"`
	Amount      float64 `json:"amount"`
	IsNote      bool    `json:"isNote,omitempty"`
}

// CompanyDetails identifies the issuing company ("from" block)
type CompanyDetails struct {
	CompanyName    string `gorm:"type:varchar(255);not null" json:"companyName"`
	CompanyAddress string `gorm:"type:text" json:"companyAddress"`
	CompanyCity    string `gorm:"type:varchar(100)" json:"companyCity"`
	CompanyState   string `gorm:"type:varchar(100)" json:"companyState"`
	CompanyZip     string `gorm:"type:varchar(20)" json:"companyZip"`
	CompanyCountry string `gorm:"type:varchar(100)" json:"companyCountry"`
	CompanyEmail   string `gorm:"type:varchar(255)" json:"companyEmail"`
	CompanyPhone   string `gorm:"type:varchar(50)" json:"companyPhone"`
}

// ClientDetails identifies the billed client ("to" block)
type ClientDetails struct {
	ClientName    string `gorm:"type:varchar(255);not null" json:"clientName"`
	ClientAddress string `gorm:"type:text" json:"clientAddress"`
	ClientCity    string `gorm:"type:varchar(100)" json:"clientCity"`
	ClientState   string `gorm:"type:varchar(100)" json:"clientState"`
	ClientZip     string `gorm:"type:varchar(20)" json:"clientZip"`
	ClientCountry string `gorm:"type:varchar(100)" json:"clientCountry"`
	ClientEmail   string `gorm:"type:varchar(255)" json:"clientEmail,omitempty"`
	ClientPhone   string `gorm:"type:varchar(50)" json:"clientPhone,omitempty"`
	ClientFax     string `gorm:"type:varchar(50)" json:"clientFax,omitempty"`
}

// BankDetails holds the remittance block printed under the totals
type BankDetails struct {
	BankBeneficiaryName string `gorm:"type:varchar(255)" json:"bankBeneficiaryName,omitempty"`
	BankAccountNumber   string `gorm:"type:varchar(100)" json:"bankAccountNumber,omitempty"`
	BankName            string `gorm:"type:varchar(255)" json:"bankName,omitempty"`
	BankBranch          string `gorm:"type:varchar(255)" json:"bankBranch,omitempty"`
	BankAddress         string `gorm:"type:text" json:"bankAddress,omitempty"`
	BankSwiftCode       string `gorm:"type:varchar(50)" json:"bankSwiftCode,omitempty"`
}

// Invoice is the international invoice, the richest document kind.
// Subtotal, TaxAmount and Total are derived from Items, TaxRate and CommissionPercent.
type Invoice struct {
	DocumentBase
	CompanyDetails
	ClientDetails
	BankDetails

	IssueDate string `gorm:"type:varchar(20)" json:"issueDate"`
	DueDate   string `gorm:"type:varchar(20)" json:"dueDate"`

	Items             datatypes.JSONSlice[LineItem] `json:"items"`
	Subtotal          float64                       `json:"subtotal"`
	TaxRate           float64                       `json:"taxRate"`
	TaxAmount         float64                       `json:"taxAmount"`
	Total             float64                       `json:"total"`
	Currency          string                        `gorm:"type:varchar(10)" json:"currency,omitempty"`
	CommissionPercent float64                       `json:"commissionPercent,omitempty"`

	Notes        string `gorm:"type:text" json:"notes,omitempty"`
	Terms        string `gorm:"type:text" json:"terms,omitempty"`
	Reference    string `gorm:"type:varchar(255)" json:"reference,omitempty"`
	AgentName    string `gorm:"type:varchar(255)" json:"agentName,omitempty"`
	AgentMobile  string `gorm:"type:varchar(50)" json:"agentMobile,omitempty"`
	TIN          string `gorm:"column:tin;type:varchar(50)" json:"tin,omitempty"`
	BIN          string `gorm:"column:bin;type:varchar(50)" json:"bin,omitempty"`
	TotalInWords string `gorm:"type:text" json:"totalInWords,omitempty"`
	SignatureURL string `gorm:"column:signature_url;type:text" json:"signatureUrl,omitempty"`
	SealURL      string `gorm:"column:seal_url;type:text" json:"sealUrl,omitempty"`
}

// LocalBill is the domestic bill: invoice-shaped, taxed, but without commission.
type LocalBill struct {
	DocumentBase
	CompanyDetails
	ClientDetails
	BankDetails

	IssueDate string `gorm:"type:varchar(20)" json:"issueDate"`
	DueDate   string `gorm:"type:varchar(20)" json:"dueDate"`

	Items     datatypes.JSONSlice[LineItem] `json:"items"`
	Subtotal  float64                       `json:"subtotal"`
	TaxRate   float64                       `json:"taxRate"`
	TaxAmount float64                       `json:"taxAmount"`
	Total     float64                       `json:"total"`
	Currency  string                        `gorm:"type:varchar(10)" json:"currency,omitempty"`

	Notes        string `gorm:"type:text" json:"notes,omitempty"`
	Terms        string `gorm:"type:text" json:"terms,omitempty"`
	Reference    string `gorm:"type:varchar(255)" json:"reference,omitempty"`
	AgentName    string `gorm:"type:varchar(255)" json:"agentName,omitempty"`
	AgentMobile  string `gorm:"type:varchar(50)" json:"agentMobile,omitempty"`
	TIN          string `gorm:"column:tin;type:varchar(50)" json:"tin,omitempty"`
	BIN          string `gorm:"column:bin;type:varchar(50)" json:"bin,omitempty"`
	TotalInWords string `gorm:"type:text" json:"totalInWords,omitempty"`
	SignatureURL string `gorm:"column:signature_url;type:text" json:"signatureUrl,omitempty"`
	SealURL      string `gorm:"column:seal_url;type:text" json:"sealUrl,omitempty"`
}
