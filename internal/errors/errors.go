package errors

import "errors"

// Category errors are the Kind of every *Error.
var (
	// ErrIO indicates a file could not be opened, read or written.
	ErrIO = errors.New("i/o error")

	// ErrFormat indicates a file is not in a format endec understands.
	ErrFormat = errors.New("unrecognized or corrupt file")

	// ErrVersion indicates the file format version cannot be handled by this build.
	ErrVersion = errors.New("unsupported format version")

	// ErrCipher indicates a symmetric cipher stage failed.
	ErrCipher = errors.New("cipher error")

	// ErrIntegrity indicates decrypted content did not match its stored checksum.
	ErrIntegrity = errors.New("integrity check failed")

	// ErrPreflight indicates the batch was rejected before any file was touched.
	ErrPreflight = errors.New("preflight check failed")

	// ErrKey indicates the key could not be obtained or derived.
	ErrKey = errors.New("key error")

	// ErrConfig indicates the configuration is unreadable or invalid.
	ErrConfig = errors.New("invalid configuration")
)

// Header errors are causes under ErrFormat and ErrVersion.
var (
	// ErrUnrecognizedHeader indicates a header line did not start with the expected marker.
	ErrUnrecognizedHeader = errors.New("unrecognized header")

	// ErrTruncatedHeader indicates the input ended before the header was complete.
	ErrTruncatedHeader = errors.New("truncated header")

	// ErrInvalidVersion indicates the header version is not a semantic version.
	ErrInvalidVersion = errors.New("invalid version")

	// ErrInvalidSalt indicates the salt is not valid base64.
	ErrInvalidSalt = errors.New("invalid salt encoding")

	// ErrSaltLength indicates the decoded salt has the wrong length.
	ErrSaltLength = errors.New("wrong salt length")

	// ErrInvalidChecksum indicates the checksum line could not be parsed.
	ErrInvalidChecksum = errors.New("invalid checksum")

	// ErrVersionTooOld indicates the version predates every registered strategy.
	ErrVersionTooOld = errors.New("no such historical version")

	// ErrVersionTooNew indicates the file was written by a newer, incompatible build.
	ErrVersionTooNew = errors.New("file is from a newer incompatible version")
)

// Cryptographic errors are causes under ErrCipher, ErrIntegrity and ErrKey.
var (
	// ErrBadPadding indicates the padding of a decrypted block is malformed.
	ErrBadPadding = errors.New("bad padding")

	// ErrCiphertextLength indicates the ciphertext is not a whole number of blocks.
	ErrCiphertextLength = errors.New("invalid ciphertext length")

	// ErrInvalidKeyLength indicates the stretched key is too short for a cipher stage.
	ErrInvalidKeyLength = errors.New("invalid key length")

	// ErrUnknownAlgorithm indicates an algorithm tag outside the known set.
	ErrUnknownAlgorithm = errors.New("unknown algorithm")

	// ErrChecksumMismatch indicates the recomputed checksum differs from the header.
	ErrChecksumMismatch = errors.New("checksum did not match")

	// ErrCompression indicates the compression codec failed.
	ErrCompression = errors.New("compression failed")

	// ErrEmptyKey indicates the key source produced an empty key.
	ErrEmptyKey = errors.New("key is empty")

	// ErrKeyMismatch indicates the confirmation prompt did not match the first entry.
	ErrKeyMismatch = errors.New("keys did not match")

	// ErrKeySource indicates the key source string could not be understood.
	ErrKeySource = errors.New("invalid key source")
)

// File errors indicate issues with file discovery or access.
var (
	// ErrNoFilesFound indicates no files matched the provided patterns.
	ErrNoFilesFound = errors.New("no matching files found")

	// ErrInputNotFound indicates one or more inputs do not exist or are not regular files.
	ErrInputNotFound = errors.New("input file not found")

	// ErrOutputExists indicates one or more outputs already exist.
	ErrOutputExists = errors.New("output file already exists")

	// ErrInvalidDateFormat indicates a date filter is not in YYYY-MM-DD form.
	ErrInvalidDateFormat = errors.New("invalid date format")
)
