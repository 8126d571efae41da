package source

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32 // просто ID источника
	// FileFlags encodes metadata about a source file.
	FileFlags uint8 // метаданные
	// BytePos is a byte offset into a file's content.
	BytePos uint32
)

const (
	// FileVirtual indicates the file was added from memory (test, stdin, REPL line).
	FileVirtual FileFlags = 1 << iota // добавлен не с диска (тест, stdin)
	FileHadBOM
	FileNormalizedCRLF
	FileNormalizedNFC
)

// NoFileID marks spans that point at no file (I/O errors, CLI usage).
const NoFileID FileID = ^FileID(0)

// File captures metadata and content for a single source file.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol represents a human-readable position in a source file.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based
}

// Advance returns the position moved past a rune of the given UTF-8 width.
func (p BytePos) Advance(width int) BytePos {
	return p + BytePos(width)
}
