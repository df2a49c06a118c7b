package stock

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

// Product is the backend's product projection. Field names on the wire are
// the backend's Portuguese vocabulary; keep the tags in sync with it.
type Product struct {
	ID          int64   `json:"id"`
	Name        string  `json:"nome"`
	Description string  `json:"descricao"`
	Price       float64 `json:"preco"`
	Quantity    int     `json:"quantidadeEstoque"`
	Unit        string  `json:"unidadeMedida"`
}

// ProductRequest is the create/update payload for a product.
type ProductRequest struct {
	Name        string  `json:"nome" form:"nome"`
	Description string  `json:"descricao" form:"descricao"`
	Price       float64 `json:"preco" form:"preco"`
	Quantity    int     `json:"quantidadeEstoque" form:"quantidadeEstoque"`
	Unit        string  `json:"unidadeMedida" form:"unidadeMedida"`
	SupplierID  int64   `json:"fornecedorId,omitempty" form:"fornecedorId"`
}

// Validate will run validation rules
func (r ProductRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.Description, validation.Length(0, 500)),
		validation.Field(&r.Price, validation.Min(0.0)),
		validation.Field(&r.Quantity, validation.Min(0)),
		validation.Field(&r.Unit, validation.Required, validation.Length(1, 50)),
	)
}

// Supplier mirrors the backend's fornecedor entity.
type Supplier struct {
	ID           int64  `json:"id"`
	Name         string `json:"nome"`
	ContactName  string `json:"contatoNome,omitempty"`
	ContactEmail string `json:"contatoEmail,omitempty"`
	ContactPhone string `json:"contatoTelefone,omitempty"`
}

// Validate will run validation rules
func (s Supplier) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Name, validation.Required, validation.Length(1, 255)),
	)
}

// StockEntry records product units arriving from a supplier. EntryDate is
// the backend's LocalDate, formatted YYYY-MM-DD.
type StockEntry struct {
	ID           int64   `json:"id"`
	ProductID    int64   `json:"produtoId"`
	ProductName  string  `json:"produtoNome"`
	SupplierID   int64   `json:"fornecedorId"`
	SupplierName string  `json:"fornecedorNome"`
	Quantity     int     `json:"quantidade"`
	EntryDate    string  `json:"dataEntrada"`
	CostPrice    float64 `json:"precoCusto"`
	Note         string  `json:"observacao,omitempty"`
	TotalValue   float64 `json:"valorTotalEntrada"`
}

// StockEntryRequest is the create payload for an entry.
type StockEntryRequest struct {
	ProductID  int64   `json:"produtoId" form:"produtoId"`
	SupplierID int64   `json:"fornecedorId" form:"fornecedorId"`
	Quantity   int     `json:"quantidade" form:"quantidade"`
	EntryDate  string  `json:"dataEntrada" form:"dataEntrada"`
	CostPrice  float64 `json:"precoCusto,omitempty" form:"precoCusto"`
	Note       string  `json:"observacao,omitempty" form:"observacao"`
}

// Validate will run validation rules
func (r StockEntryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ProductID, validation.Required),
		validation.Field(&r.SupplierID, validation.Required),
		validation.Field(&r.Quantity, validation.Required, validation.Min(1)),
		validation.Field(&r.EntryDate, validation.Required, validation.Date("2006-01-02")),
	)
}

// StockExit records product units leaving stock.
type StockExit struct {
	ID          int64  `json:"id"`
	ProductID   int64  `json:"produtoId"`
	ProductName string `json:"produtoNome"`
	Quantity    int    `json:"quantidade"`
	ExitDate    string `json:"dataSaida"`
	Reason      string `json:"motivo,omitempty"`
	Customer    string `json:"cliente,omitempty"`
	Note        string `json:"observacao,omitempty"`
}

// StockExitRequest is the create payload for an exit.
type StockExitRequest struct {
	ProductID int64  `json:"produtoId" form:"produtoId"`
	Quantity  int    `json:"quantidade" form:"quantidade"`
	ExitDate  string `json:"dataSaida" form:"dataSaida"`
	Reason    string `json:"motivo,omitempty" form:"motivo"`
	Customer  string `json:"cliente,omitempty" form:"cliente"`
	Note      string `json:"observacao,omitempty" form:"observacao"`
}

// Validate will run validation rules
func (r StockExitRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ProductID, validation.Required),
		validation.Field(&r.Quantity, validation.Required, validation.Min(1)),
		validation.Field(&r.ExitDate, validation.Required, validation.Date("2006-01-02")),
		validation.Field(&r.Reason, validation.Length(0, 255)),
		validation.Field(&r.Customer, validation.Length(0, 255)),
	)
}

// TopStockedProduct is a dashboard ranking row.
type TopStockedProduct struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// DashboardOverview aggregates the landing view's figures.
type DashboardOverview struct {
	TotalProducts      int                 `json:"totalProducts"`
	TotalStockValue    float64             `json:"totalStockValue"`
	LowStockItems      int                 `json:"lowStockItems"`
	MonthlyEntries     int                 `json:"monthlyEntries"`
	MonthlyExits       int                 `json:"monthlyExits"`
	TopStockedProducts []TopStockedProduct `json:"topStockedProducts"`
}
