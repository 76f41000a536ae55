package errors

// ErrorCode represents a specific error condition.
// Error codes are string-based for debuggability and natural log output.
type ErrorCode string

const (
	// Invalid-operation errors.

	// CodeInvalidOperation indicates a request that can never succeed as
	// stated: copying or moving an entry onto itself or into its own
	// subtree, overwriting a directory with a non-directory (or the
	// reverse), or finding an entry of the wrong type.
	CodeInvalidOperation ErrorCode = "INVALID_OPERATION"

	// Conflict errors.

	// CodeAlreadyExists indicates the destination exists and the policy
	// forbids replacing it.
	CodeAlreadyExists ErrorCode = "ALREADY_EXISTS"

	// Unsupported-entry errors.

	// CodeUnsupportedEntry indicates an entry type that cannot be copied
	// (socket, FIFO, or an unknown type).
	CodeUnsupportedEntry ErrorCode = "UNSUPPORTED_ENTRY"

	// Underlying I/O errors.

	// CodeNotFound indicates a required entry does not exist.
	CodeNotFound ErrorCode = "NOT_FOUND"

	// CodePermission indicates the filesystem denied access.
	CodePermission ErrorCode = "PERMISSION_DENIED"

	// CodeCrossDevice indicates a rename crossed filesystem boundaries.
	CodeCrossDevice ErrorCode = "CROSS_DEVICE"

	// CodeUnsupported indicates the filesystem backend lacks a capability.
	CodeUnsupported ErrorCode = "UNSUPPORTED"

	// CodeCanceled indicates the context was canceled or timed out.
	CodeCanceled ErrorCode = "CANCELED"

	// CodeIO indicates any other failure reported by the filesystem.
	CodeIO ErrorCode = "IO_ERROR"

	// Generic errors.

	// CodeUnknown indicates an unknown or unclassified error occurred.
	CodeUnknown ErrorCode = "UNKNOWN"
)
