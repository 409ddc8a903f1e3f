package inventory

import "github.com/BruksfildServices01/salon-pos/internal/domain/money"

// Money columns are carried in paise. Quantities and percentages stay
// floats rounded to two decimals.

type Purchase struct {
	Date                     string       `json:"date"`
	ProductName              string       `json:"product_name"`
	HSNCode                  string       `json:"hsn_code"`
	Units                    string       `json:"units"`
	InvoiceNo                string       `json:"invoice_no"`
	Qty                      float64      `json:"qty"`
	PriceInclGST             money.Amount `json:"price_incl_gst"`
	PriceExGST               money.Amount `json:"price_ex_gst"`
	DiscountPercentage       float64      `json:"discount_percentage"`
	PurchaseCostPerUnitExGST money.Amount `json:"purchase_cost_per_unit_ex_gst"`
	GSTPercentage            float64      `json:"gst_percentage"`
	TaxableValue             money.Amount `json:"taxable_value"`
	IGST                     money.Amount `json:"igst"`
	CGST                     money.Amount `json:"cgst"`
	SGST                     money.Amount `json:"sgst"`
	InvoiceValue             money.Amount `json:"invoice_value"`
}

type Sale struct {
	Date                     string       `json:"date"`
	ProductName              string       `json:"product_name"`
	HSNCode                  string       `json:"hsn_code"`
	Units                    string       `json:"units"`
	InvoiceNo                string       `json:"invoice_no"`
	Qty                      float64      `json:"qty"`
	PurchaseCostPerUnitExGST money.Amount `json:"purchase_cost_per_unit_ex_gst"`
	PurchaseGSTPercentage    float64      `json:"purchase_gst_percentage"`
	PurchaseTaxableValue     money.Amount `json:"purchase_taxable_value"`
	PurchaseIGST             money.Amount `json:"purchase_igst"`
	PurchaseCGST             money.Amount `json:"purchase_cgst"`
	PurchaseSGST             money.Amount `json:"purchase_sgst"`
	TotalPurchaseCost        money.Amount `json:"total_purchase_cost"`
	MRPInclGST               money.Amount `json:"mrp_incl_gst"`
	MRPExGST                 money.Amount `json:"mrp_ex_gst"`
	DiscountPercentage       float64      `json:"discount_percentage"`
	DiscountedSalesRateExGST money.Amount `json:"discounted_sales_rate_ex_gst"`
	SalesGSTPercentage       float64      `json:"sales_gst_percentage"`
	SalesTaxableValue        money.Amount `json:"sales_taxable_value"`
	SalesIGST                money.Amount `json:"sales_igst"`
	SalesCGST                money.Amount `json:"sales_cgst"`
	SalesSGST                money.Amount `json:"sales_sgst"`
	InvoiceValue             money.Amount `json:"invoice_value"`
}

type Consumption struct {
	Date                     string       `json:"date"`
	ProductName              string       `json:"product_name"`
	HSNCode                  string       `json:"hsn_code"`
	Units                    string       `json:"units"`
	RequisitionVoucherNo     string       `json:"requisition_voucher_no"`
	Qty                      float64      `json:"qty"`
	PurchaseCostPerUnitExGST money.Amount `json:"purchase_cost_per_unit_ex_gst"`
	PurchaseGSTPercentage    float64      `json:"purchase_gst_percentage"`
	TaxableValue             money.Amount `json:"taxable_value"`
	IGST                     money.Amount `json:"igst"`
	CGST                     money.Amount `json:"cgst"`
	SGST                     money.Amount `json:"sgst"`
	TotalPurchaseCost        money.Amount `json:"total_purchase_cost"`
}

type Balance struct {
	ProductName  string       `json:"product_name"`
	HSNCode      string       `json:"hsn_code"`
	Units        string       `json:"units"`
	Qty          float64      `json:"qty"`
	TaxableValue money.Amount `json:"taxable_value"`
	IGST         money.Amount `json:"igst"`
	CGST         money.Amount `json:"cgst"`
	SGST         money.Amount `json:"sgst"`
	InvoiceValue money.Amount `json:"invoice_value"`
}

// ProductRef is one distinct (name, HSN) pair seen in the sheet.
type ProductRef struct {
	ProductName string `json:"product_name"`
	HSNCode     string `json:"hsn_code"`
	Units       string `json:"units"`
}

type StockSheet struct {
	Purchases   []Purchase    `json:"purchases"`
	Sales       []Sale        `json:"sales"`
	Consumption []Consumption `json:"consumption"`
	Balance     []Balance     `json:"balance"`
	Products    []ProductRef  `json:"products"`
}
