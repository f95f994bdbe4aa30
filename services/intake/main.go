package intake

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"varanno/api/models/constants"
	fileFormat "varanno/api/models/constants/file-format"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/io/seqio/fastq"
	"github.com/biogo/biogo/seq/linear"
	"github.com/pkg/errors"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrCompressedReads   = errors.New("compressed read files are not accepted; decompress before uploading")
	ErrTooLarge          = errors.New("uploaded file exceeds the size limit")
	ErrNoSequences       = errors.New("file contains no sequences")
)

// Upload describes a file placed in a session's work directory.
type Upload struct {
	Path     string
	Filename string
	Format   constants.FileFormat
	Bytes    int64
}

// DetectFormat infers the format from filename, rejecting gzipped reads
// and unknown extensions.
func DetectFormat(filename string) (constants.FileFormat, error) {
	lowered := strings.ToLower(filename)
	if strings.HasSuffix(lowered, ".gz") || strings.HasSuffix(lowered, ".bz2") {
		trimmed := strings.TrimSuffix(strings.TrimSuffix(lowered, ".gz"), ".bz2")
		if fileFormat.IsReads(fileFormat.CastFromFilename(trimmed)) {
			return fileFormat.Unknown, ErrCompressedReads
		}
	}

	format := fileFormat.CastFromFilename(filename)
	if format == fileFormat.Unknown {
		return format, errors.Wrapf(ErrUnsupportedFormat, "%s (accepted: %s)",
			filename, strings.Join(fileFormat.AcceptedExtensions(), ", "))
	}
	return format, nil
}

// Save copies src into workDir under the base name of filename. A
// maxBytes of zero or less disables the size check.
func Save(src io.Reader, workDir string, filename string, maxBytes int64) (*Upload, error) {
	name := filepath.Base(filepath.Clean("/" + strings.TrimSpace(filename)))
	if name == "/" || name == "." {
		return nil, errors.Wrap(ErrUnsupportedFormat, "empty filename")
	}

	format, err := DetectFormat(name)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(workDir, 0755); err != nil {
		return nil, errors.Wrapf(err, "creating work directory %s", workDir)
	}

	destination := filepath.Join(workDir, name)
	out, err := os.Create(destination)
	if err != nil {
		return nil, errors.Wrapf(err, "creating %s", destination)
	}
	defer out.Close()

	reader := src
	if maxBytes > 0 {
		reader = io.LimitReader(src, maxBytes+1)
	}

	written, err := io.Copy(out, reader)
	if err != nil {
		return nil, errors.Wrapf(err, "writing %s", destination)
	}
	if maxBytes > 0 && written > maxBytes {
		out.Close()
		os.Remove(destination)
		return nil, ErrTooLarge
	}

	fmt.Printf("[%s] - Saved %s (%d bytes, %s)\n", time.Now(), destination, written, format)

	return &Upload{
		Path:     destination,
		Filename: name,
		Format:   format,
		Bytes:    written,
	}, nil
}

// ValidateReads parses a FASTA or FASTQ file end to end and returns the
// number of sequences in it.
func ValidateReads(path string, format constants.FileFormat) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, errors.Wrapf(err, "opening %s", path)
	}
	defer f.Close()

	var reader seqio.Reader
	switch format {
	case fileFormat.Fasta:
		reader = fasta.NewReader(f, linear.NewSeq("", nil, alphabet.DNAredundant))
	case fileFormat.Fastq:
		reader = fastq.NewReader(f, linear.NewQSeq("", nil, alphabet.DNAredundant, alphabet.Sanger))
	default:
		return 0, errors.Wrapf(ErrUnsupportedFormat, "%s is not a read file", format)
	}

	count := 0
	scanner := seqio.NewScanner(reader)
	for scanner.Next() {
		if scanner.Seq().Len() > 0 {
			count++
		}
	}
	if err := scanner.Error(); err != nil {
		return count, errors.Wrapf(err, "parsing %s as %s", filepath.Base(path), format)
	}
	if count == 0 {
		return 0, ErrNoSequences
	}
	return count, nil
}
