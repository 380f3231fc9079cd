package service

import (
	"invoicedesk/internal/model"
)

func set[V any](dst *V, v *V) {
	if v != nil {
		*dst = *v
	}
}

// BasePatch covers the columns every document kind shares.
type BasePatch struct {
	InvoiceNumber *string `json:"invoiceNumber"`
	Status        *string `json:"status"`
}

func (p BasePatch) apply(b *model.DocumentBase) {
	set(&b.InvoiceNumber, p.InvoiceNumber)
	set(&b.Status, p.Status)
}

type CompanyPatch struct {
	CompanyName    *string `json:"companyName"`
	CompanyAddress *string `json:"companyAddress"`
	CompanyCity    *string `json:"companyCity"`
	CompanyState   *string `json:"companyState"`
	CompanyZip     *string `json:"companyZip"`
	CompanyCountry *string `json:"companyCountry"`
	CompanyEmail   *string `json:"companyEmail"`
	CompanyPhone   *string `json:"companyPhone"`
}

func (p CompanyPatch) apply(c *model.CompanyDetails) {
	set(&c.CompanyName, p.CompanyName)
	set(&c.CompanyAddress, p.CompanyAddress)
	set(&c.CompanyCity, p.CompanyCity)
	set(&c.CompanyState, p.CompanyState)
	set(&c.CompanyZip, p.CompanyZip)
	set(&c.CompanyCountry, p.CompanyCountry)
	set(&c.CompanyEmail, p.CompanyEmail)
	set(&c.CompanyPhone, p.CompanyPhone)
}

type ClientPatch struct {
	ClientName    *string `json:"clientName"`
	ClientAddress *string `json:"clientAddress"`
	ClientCity    *string `json:"clientCity"`
	ClientState   *string `json:"clientState"`
	ClientZip     *string `json:"clientZip"`
	ClientCountry *string `json:"clientCountry"`
	ClientEmail   *string `json:"clientEmail"`
	ClientPhone   *string `json:"clientPhone"`
	ClientFax     *string `json:"clientFax"`
}

func (p ClientPatch) apply(c *model.ClientDetails) {
	set(&c.ClientName, p.ClientName)
	set(&c.ClientAddress, p.ClientAddress)
	set(&c.ClientCity, p.ClientCity)
	set(&c.ClientState, p.ClientState)
	set(&c.ClientZip, p.ClientZip)
	set(&c.ClientCountry, p.ClientCountry)
	set(&c.ClientEmail, p.ClientEmail)
	set(&c.ClientPhone, p.ClientPhone)
	set(&c.ClientFax, p.ClientFax)
}

type BankPatch struct {
	BankBeneficiaryName *string `json:"bankBeneficiaryName"`
	BankAccountNumber   *string `json:"bankAccountNumber"`
	BankName            *string `json:"bankName"`
	BankBranch          *string `json:"bankBranch"`
	BankAddress         *string `json:"bankAddress"`
	BankSwiftCode       *string `json:"bankSwiftCode"`
}

func (p BankPatch) apply(b *model.BankDetails) {
	set(&b.BankBeneficiaryName, p.BankBeneficiaryName)
	set(&b.BankAccountNumber, p.BankAccountNumber)
	set(&b.BankName, p.BankName)
	set(&b.BankBranch, p.BankBranch)
	set(&b.BankAddress, p.BankAddress)
	set(&b.BankSwiftCode, p.BankSwiftCode)
}

// BillPatch holds the fields Invoice and LocalBill have in common.
type BillPatch struct {
	BasePatch
	CompanyPatch
	ClientPatch
	BankPatch

	IssueDate    *string           `json:"issueDate"`
	DueDate      *string           `json:"dueDate"`
	Items        *[]model.LineItem `json:"items"`
	TaxRate      *float64          `json:"taxRate"`
	Currency     *string           `json:"currency"`
	Notes        *string           `json:"notes"`
	Terms        *string           `json:"terms"`
	Reference    *string           `json:"reference"`
	AgentName    *string           `json:"agentName"`
	AgentMobile  *string           `json:"agentMobile"`
	TIN          *string           `json:"tin"`
	BIN          *string           `json:"bin"`
	TotalInWords *string           `json:"totalInWords"`
	SignatureURL *string           `json:"signatureUrl"`
	SealURL      *string           `json:"sealUrl"`
}

// InvoicePatch is a partial Invoice update.
type InvoicePatch struct {
	BillPatch
	CommissionPercent *float64 `json:"commissionPercent"`
}

func (p *InvoicePatch) Apply(inv *model.Invoice) {
	p.BasePatch.apply(&inv.DocumentBase)
	p.CompanyPatch.apply(&inv.CompanyDetails)
	p.ClientPatch.apply(&inv.ClientDetails)
	p.BankPatch.apply(&inv.BankDetails)

	set(&inv.IssueDate, p.IssueDate)
	set(&inv.DueDate, p.DueDate)
	if p.Items != nil {
		inv.Items = append([]model.LineItem{}, *p.Items...)
	}
	set(&inv.TaxRate, p.TaxRate)
	set(&inv.Currency, p.Currency)
	set(&inv.CommissionPercent, p.CommissionPercent)
	set(&inv.Notes, p.Notes)
	set(&inv.Terms, p.Terms)
	set(&inv.Reference, p.Reference)
	set(&inv.AgentName, p.AgentName)
	set(&inv.AgentMobile, p.AgentMobile)
	set(&inv.TIN, p.TIN)
	set(&inv.BIN, p.BIN)
	set(&inv.TotalInWords, p.TotalInWords)
	set(&inv.SignatureURL, p.SignatureURL)
	set(&inv.SealURL, p.SealURL)
}

// LocalBillPatch is a partial LocalBill update.
type LocalBillPatch struct {
	BillPatch
}

func (p *LocalBillPatch) Apply(bill *model.LocalBill) {
	p.BasePatch.apply(&bill.DocumentBase)
	p.CompanyPatch.apply(&bill.CompanyDetails)
	p.ClientPatch.apply(&bill.ClientDetails)
	p.BankPatch.apply(&bill.BankDetails)

	set(&bill.IssueDate, p.IssueDate)
	set(&bill.DueDate, p.DueDate)
	if p.Items != nil {
		bill.Items = append([]model.LineItem{}, *p.Items...)
	}
	set(&bill.TaxRate, p.TaxRate)
	set(&bill.Currency, p.Currency)
	set(&bill.Notes, p.Notes)
	set(&bill.Terms, p.Terms)
	set(&bill.Reference, p.Reference)
	set(&bill.AgentName, p.AgentName)
	set(&bill.AgentMobile, p.AgentMobile)
	set(&bill.TIN, p.TIN)
	set(&bill.BIN, p.BIN)
	set(&bill.TotalInWords, p.TotalInWords)
	set(&bill.SignatureURL, p.SignatureURL)
	set(&bill.SealURL, p.SealURL)
}

// ProformaInvoicePatch is a partial ProformaInvoice update.
type ProformaInvoicePatch struct {
	BasePatch

	CompanyName       *string               `json:"companyName"`
	CompanyAddress    *string               `json:"companyAddress"`
	CompanyLogoURL    *string               `json:"companyLogoUrl"`
	CompanySealURL    *string               `json:"companySealUrl"`
	ClientName        *string               `json:"clientName"`
	ClientAddress     *string               `json:"clientAddress"`
	Date              *string               `json:"date"`
	Shipper           *string               `json:"shipper"`
	TelephoneNumber   *string               `json:"telephoneNumber"`
	Destination       *string               `json:"destination"`
	DeliveryTime      *string               `json:"deliveryTime"`
	PaymentTerm       *string               `json:"paymentTerm"`
	Items             *[]model.ProformaItem `json:"items"`
	TotalInWords      *string               `json:"totalInWords"`
	AdvisingBank      *string               `json:"advisingBank"`
	BankAddress       *string               `json:"bankAddress"`
	BeneficiaryName   *string               `json:"beneficiaryName"`
	AccountNumber     *string               `json:"accountNumber"`
	SwiftCode         *string               `json:"swiftCode"`
	Origin            *string               `json:"origin"`
	PortOfLoading     *string               `json:"portOfLoading"`
	PortOfDestination *string               `json:"portOfDestination"`
	PartialShipment   *string               `json:"partialShipment"`
	Transshipment     *string               `json:"transshipment"`
	Terms             *string               `json:"terms"`
}

func (p *ProformaInvoicePatch) Apply(pi *model.ProformaInvoice) {
	p.BasePatch.apply(&pi.DocumentBase)

	set(&pi.CompanyName, p.CompanyName)
	set(&pi.CompanyAddress, p.CompanyAddress)
	set(&pi.CompanyLogoURL, p.CompanyLogoURL)
	set(&pi.CompanySealURL, p.CompanySealURL)
	set(&pi.ClientName, p.ClientName)
	set(&pi.ClientAddress, p.ClientAddress)
	set(&pi.Date, p.Date)
	set(&pi.Shipper, p.Shipper)
	set(&pi.TelephoneNumber, p.TelephoneNumber)
	set(&pi.Destination, p.Destination)
	set(&pi.DeliveryTime, p.DeliveryTime)
	set(&pi.PaymentTerm, p.PaymentTerm)
	if p.Items != nil {
		pi.Items = append([]model.ProformaItem{}, *p.Items...)
	}
	set(&pi.TotalInWords, p.TotalInWords)
	set(&pi.AdvisingBank, p.AdvisingBank)
	set(&pi.BankAddress, p.BankAddress)
	set(&pi.BeneficiaryName, p.BeneficiaryName)
	set(&pi.AccountNumber, p.AccountNumber)
	set(&pi.SwiftCode, p.SwiftCode)
	set(&pi.Origin, p.Origin)
	set(&pi.PortOfLoading, p.PortOfLoading)
	set(&pi.PortOfDestination, p.PortOfDestination)
	set(&pi.PartialShipment, p.PartialShipment)
	set(&pi.Transshipment, p.Transshipment)
	set(&pi.Terms, p.Terms)
}

// PartiesPatch holds the to/from block of local proformas and chalans.
type PartiesPatch struct {
	Date         *string `json:"date"`
	ToName       *string `json:"toName"`
	ToAddress    *string `json:"toAddress"`
	FromName     *string `json:"fromName"`
	FromAddress  *string `json:"fromAddress"`
	SignatureURL *string `json:"signatureUrl"`
	SealURL      *string `json:"sealUrl"`
}

// LocalProformaPatch is a partial LocalProforma update.
type LocalProformaPatch struct {
	BasePatch
	PartiesPatch

	Items        *[]model.LocalProformaItem `json:"items"`
	TotalInWords *string                    `json:"totalInWords"`
	PaymentTerms *string                    `json:"paymentTerms"`
}

func (p *LocalProformaPatch) Apply(lp *model.LocalProforma) {
	p.BasePatch.apply(&lp.DocumentBase)

	set(&lp.Date, p.Date)
	set(&lp.ToName, p.ToName)
	set(&lp.ToAddress, p.ToAddress)
	set(&lp.FromName, p.FromName)
	set(&lp.FromAddress, p.FromAddress)
	set(&lp.SignatureURL, p.SignatureURL)
	set(&lp.SealURL, p.SealURL)
	if p.Items != nil {
		lp.Items = append([]model.LocalProformaItem{}, *p.Items...)
	}
	set(&lp.TotalInWords, p.TotalInWords)
	set(&lp.PaymentTerms, p.PaymentTerms)
}

// LocalChalanPatch is a partial LocalChalan update.
type LocalChalanPatch struct {
	BasePatch
	PartiesPatch

	Items   *[]model.LocalChalanItem `json:"items"`
	InWords *string                  `json:"inWords"`
}

func (p *LocalChalanPatch) Apply(lc *model.LocalChalan) {
	p.BasePatch.apply(&lc.DocumentBase)

	set(&lc.Date, p.Date)
	set(&lc.ToName, p.ToName)
	set(&lc.ToAddress, p.ToAddress)
	set(&lc.FromName, p.FromName)
	set(&lc.FromAddress, p.FromAddress)
	set(&lc.SignatureURL, p.SignatureURL)
	set(&lc.SealURL, p.SealURL)
	if p.Items != nil {
		lc.Items = append([]model.LocalChalanItem{}, *p.Items...)
	}
	set(&lc.InWords, p.InWords)
}
