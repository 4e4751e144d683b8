package config

// Input length limits shared by the validation rules.
const (
	MaxTenantNameLength = 120
	MaxFolderNameLength = 255
	MaxFileNameLength   = 255
)
