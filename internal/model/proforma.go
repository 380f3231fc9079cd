package model

import (
	"gorm.io/datatypes"
)

// ProformaItem is a shipping-marks row; UnitPrice is free text as printed.
type ProformaItem struct {
	ShippingMarks string  `json:"shippingMarks"`
	Description   string  `json:"description"`
	UnitPrice     string  `json:"unitPrice"`
	Amount        float64 `json:"amount"`
}

// ProformaInvoice is the export proforma. Total is the plain sum of item amounts.
type ProformaInvoice struct {
	DocumentBase

	CompanyName    string `gorm:"type:varchar(255);not null" json:"companyName"`
	CompanyAddress string `gorm:"type:text" json:"companyAddress"`
	CompanyLogoURL string `gorm:"column:company_logo_url;type:text" json:"companyLogoUrl,omitempty"`
	CompanySealURL string `gorm:"column:company_seal_url;type:text" json:"companySealUrl,omitempty"`

	ClientName    string `gorm:"type:varchar(255)" json:"clientName"`
	ClientAddress string `gorm:"type:text" json:"clientAddress"`

	Date            string `gorm:"type:varchar(20)" json:"date"`
	Shipper         string `gorm:"type:varchar(255)" json:"shipper"`
	TelephoneNumber string `gorm:"type:varchar(50)" json:"telephoneNumber"`
	Destination     string `gorm:"type:varchar(255)" json:"destination"`
	DeliveryTime    string `gorm:"type:varchar(100)" json:"deliveryTime"`
	PaymentTerm     string `gorm:"type:varchar(255)" json:"paymentTerm"`

	Items        datatypes.JSONSlice[ProformaItem] `json:"items"`
	Total        float64                           `json:"total"`
	TotalInWords string                            `gorm:"type:text" json:"totalInWords"`

	AdvisingBank    string `gorm:"type:varchar(255)" json:"advisingBank"`
	BankAddress     string `gorm:"type:text" json:"bankAddress"`
	BeneficiaryName string `gorm:"type:varchar(255)" json:"beneficiaryName"`
	AccountNumber   string `gorm:"type:varchar(100)" json:"accountNumber"`
	SwiftCode       string `gorm:"type:varchar(50)" json:"swiftCode"`

	Origin            string `gorm:"type:varchar(255)" json:"origin"`
	PortOfLoading     string `gorm:"type:varchar(255)" json:"portOfLoading"`
	PortOfDestination string `gorm:"type:varchar(255)" json:"portOfDestination"`
	PartialShipment   string `gorm:"type:varchar(50)" json:"partialShipment"`
	Transshipment     string `gorm:"type:varchar(50)" json:"transshipment"`

	Terms string `gorm:"type:text" json:"terms"`
}
