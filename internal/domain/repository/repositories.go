package repository

// Repositories agrupa los puertos de escritura. Un TxRunner entrega una instancia atada a la transacción.
type Repositories struct {
	Companies CompanyRepository
	Users     UserRepository
	Products  ProductRepository
	Movements StockMovementRepository
	Purchases PurchaseRepository
	Sales     SaleRepository
	Customers CustomerRepository
	Suppliers SupplierRepository
}
