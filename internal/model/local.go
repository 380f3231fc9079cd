package model

import (
	"gorm.io/datatypes"
)

// LocalProformaItem is priced per kilogram in taka; TotalPriceTk = QuantityInKg * UnitPriceTk.
type LocalProformaItem struct {
	Sln             int     `json:"sln"`
	ItemDescription string  `json:"itemDescription"`
	QuantityInKg    float64 `json:"quantityInKg"`
	UnitPriceTk     float64 `json:"unitPriceTk"`
	TotalPriceTk    float64 `json:"totalPriceTk"`
}

// LocalProforma is the domestic proforma. It has no tax step.
type LocalProforma struct {
	DocumentBase

	Date        string `gorm:"type:varchar(20)" json:"date"`
	ToName      string `gorm:"type:varchar(255)" json:"toName"`
	ToAddress   string `gorm:"type:text" json:"toAddress"`
	FromName    string `gorm:"type:varchar(255)" json:"fromName"`
	FromAddress string `gorm:"type:text" json:"fromAddress"`

	Items         datatypes.JSONSlice[LocalProformaItem] `json:"items"`
	GrandTotal    float64                                `json:"grandTotal"`
	TotalQuantity float64                                `json:"totalQuantity"`
	TotalInWords  string                                 `gorm:"type:text" json:"totalInWords"`
	PaymentTerms  string                                 `gorm:"type:text" json:"paymentTerms"`

	SignatureURL string `gorm:"column:signature_url;type:text" json:"signatureUrl,omitempty"`
	SealURL      string `gorm:"column:seal_url;type:text" json:"sealUrl,omitempty"`
}

// LocalChalanItem is a delivery row; chalans carry quantities but no prices.
type LocalChalanItem struct {
	Sln         int     `json:"sln"`
	Description string  `json:"description"`
	Unit        string  `json:"unit"`
	Quantity    float64 `json:"quantity"`
}

// LocalChalan is the delivery challan.
type LocalChalan struct {
	DocumentBase

	Date        string `gorm:"type:varchar(20)" json:"date"`
	ToName      string `gorm:"type:varchar(255)" json:"toName"`
	ToAddress   string `gorm:"type:text" json:"toAddress"`
	FromName    string `gorm:"type:varchar(255)" json:"fromName"`
	FromAddress string `gorm:"type:text" json:"fromAddress"`

	Items         datatypes.JSONSlice[LocalChalanItem] `json:"items"`
	TotalQuantity float64                              `json:"totalQuantity"`
	InWords       string                               `gorm:"type:text" json:"inWords"`

	SignatureURL string `gorm:"column:signature_url;type:text" json:"signatureUrl,omitempty"`
	SealURL      string `gorm:"column:seal_url;type:text" json:"sealUrl,omitempty"`
}
