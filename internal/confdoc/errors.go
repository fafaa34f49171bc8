package confdoc

import "errors"

// Error variables for confdoc operations.
var (
	ErrConfigFileNotFound = errors.New("config file not found")
	ErrConfigFileRead     = errors.New("cannot read config file")
	ErrConfigInvalid      = errors.New("invalid config file")
	ErrDocumentPathEmpty  = errors.New("config_file cannot be empty")
	ErrFlagRequiresArg    = errors.New("flag requires an argument")
	ErrUnknownFlag        = errors.New("unknown flag")
	ErrFileOpen           = errors.New("unable to open")
	ErrFileWrite          = errors.New("unable to write")
	ErrMerge              = errors.New("merge failed")
	ErrMergeNotObject     = errors.New("merge inputs must be non-empty objects")
	ErrKeyRequired        = errors.New("key is required")
	ErrInvalidPair        = errors.New("expected key=value")
	ErrInvalidRow         = errors.New("expected name:key=value[,key=value...]")
	ErrDuplicateKey       = errors.New("duplicate key")
	ErrDuplicateName      = errors.New("duplicate collection name")
)
