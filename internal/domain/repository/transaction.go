package repository

import "context"

// TransactionManager defines the interface for managing database transactions.
// This allows the use case layer to handle transactions without depending on a specific DB driver like GORM.
type TransactionManager interface {
	// Execute runs a function within a database transaction.
	// If the function returns an error, the transaction is rolled back. Otherwise, it's committed.
	// All repository operations within the function will use the same database transaction.
	Execute(ctx context.Context, fn func(txRepoFactory RepositoryFactory) error) error
}

// RepositoryFactory provides a way to get repository instances that are bound to a specific transaction.
// This ensures all repository operations within a transaction use the same database connection.
type RepositoryFactory interface {
	// NewProfileRepository returns a ProfileRepository instance bound to the current transaction.
	NewProfileRepository() ProfileRepository

	// NewBadgeRepository returns a BadgeRepository instance bound to the current transaction.
	NewBadgeRepository() BadgeRepository

	// NewDocumentRepository returns a DocumentRepository instance bound to the current transaction.
	NewDocumentRepository() DocumentRepository

	// NewForumRepository returns a ForumRepository instance bound to the current transaction.
	NewForumRepository() ForumRepository

	// NewShopRepository returns a ShopRepository instance bound to the current transaction.
	NewShopRepository() ShopRepository

	// NewAccountRepository returns an AccountRepository instance bound to the current transaction.
	NewAccountRepository() AccountRepository

	// NewRefreshTokenRepository returns a RefreshTokenRepository instance bound to the current transaction.
	NewRefreshTokenRepository() RefreshTokenRepository

	// NewNotificationRepository returns a NotificationRepository instance bound to the current transaction.
	NewNotificationRepository() NotificationRepository

	// NewDeviceRepository returns a DeviceRepository instance bound to the current transaction.
	NewDeviceRepository() DeviceRepository
}
