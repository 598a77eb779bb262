// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeySuccess = "success"
	KeyError   = "error"

	// Authentication
	KeyAuthRequired           = "auth.required"
	KeyAuthInvalidToken       = "auth.invalid_token"
	KeyAuthTokenExpired       = "auth.token_expired"
	KeyAuthInvalidCredentials = "auth.invalid_credentials"
	KeyAuthUserExists         = "auth.user_exists"
	KeyAuthAccountInactive    = "auth.account_inactive"
	KeyAuthLoginSuccess       = "auth.login_success"
	KeyAuthLogoutSuccess      = "auth.logout_success"
	KeyAuthRegisterSuccess    = "auth.register_success"

	// Authorization
	KeyAccessDenied = "authz.access_denied"

	// User Management
	KeyUserProfileUpdated = "user.profile_updated"
	KeyUserNotFound       = "user.not_found"
	KeyUserDeactivated    = "user.deactivated"
	KeyUserRoleUpdated    = "user.role_updated"

	// Addresses
	KeyAddressNotFound = "address.not_found"
	KeyAddressCreated  = "address.created"
	KeyAddressDeleted  = "address.deleted"

	// Products
	KeyProductCreated    = "product.created"
	KeyProductUpdated    = "product.updated"
	KeyProductDeleted    = "product.deleted"
	KeyProductNotFound   = "product.not_found"
	KeyProductSlugExists = "product.slug_exists"

	// Categories
	KeyCategoryCreated     = "category.created"
	KeyCategoryUpdated     = "category.updated"
	KeyCategoryDeleted     = "category.deleted"
	KeyCategoryNotFound    = "category.not_found"
	KeyCategorySlugExists  = "category.slug_exists"
	KeyCategoryHasChildren = "category.has_children"
	KeyCategoryCircular    = "category.circular_reference"

	// Cart
	KeyCartItemAdded   = "cart.item_added"
	KeyCartItemUpdated = "cart.item_updated"
	KeyCartItemRemoved = "cart.item_removed"
	KeyCartCleared     = "cart.cleared"
	KeyCartItemMissing = "cart.item_not_found"
	KeyCartEmpty       = "cart.empty"

	// Wishlist
	KeyWishlistItemAdded   = "wishlist.item_added"
	KeyWishlistItemUpdated = "wishlist.item_updated"
	KeyWishlistItemRemoved = "wishlist.item_removed"
	KeyWishlistItemMissing = "wishlist.item_not_found"

	// Orders
	KeyOrderPlaced        = "order.placed"
	KeyOrderNotFound      = "order.not_found"
	KeyOrderOutOfStock    = "order.out_of_stock"
	KeyOrderStatusUpdated = "order.status_updated"
	KeyOrderBadTransition = "order.invalid_transition"

	// Coupons
	KeyCouponCreated    = "coupon.created"
	KeyCouponUpdated    = "coupon.updated"
	KeyCouponNotFound   = "coupon.not_found"
	KeyCouponCodeExists = "coupon.code_exists"

	// Validation
	KeyValidationRequired = "validation.required"
	KeyValidationInvalid  = "validation.invalid"

	// File Upload
	KeyFileUploadSuccess = "file.upload_success"
	KeyFileUploadFailed  = "file.upload_failed"
	KeyFileTooLarge      = "file.too_large"
)
