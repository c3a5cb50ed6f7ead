package models

// ShoppingEntry is an opaque shopping-list value supplied by the dashboard,
// usually a string or a small object.
type ShoppingEntry = any
