package repository

// Factory describes access to different domain repositories.
type Factory interface {
	Orders() OrderRepository
	Customers() CustomerDirectory
	Products() ProductRepository
	Users() UserRepository
	Reviews() ReviewRepository
}
