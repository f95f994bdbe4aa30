package vcf

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"varanno/api/models"
	fileFormat "varanno/api/models/constants/file-format"

	"github.com/biogo/hts/bgzf"
	"github.com/pkg/errors"
)

const (
	minimumColumns = 5

	chromCol = 0
	posCol   = 1
	idCol    = 2
	refCol   = 3
	altCol   = 4
)

// ParseFile reads a plain or BGZF-compressed VCF file into record
// skeletons.
func ParseFile(path string) ([]*models.VariantRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", path)
	}
	defer f.Close()

	if fileFormat.CastFromFilename(path) != fileFormat.VcfGz {
		return Parse(f)
	}

	reader, err := bgzf.NewReader(f, 1)
	if err == nil {
		defer reader.Close()
		return Parse(reader)
	}

	// not blocked; try as ordinary gzip
	if _, seekErr := f.Seek(0, io.SeekStart); seekErr != nil {
		return nil, errors.Wrapf(seekErr, "rewinding %s", path)
	}
	gz, gzErr := gzip.NewReader(f)
	if gzErr != nil {
		return nil, errors.Wrapf(gzErr, "decompressing %s", path)
	}
	defer gz.Close()
	return Parse(gz)
}

// Parse turns VCF lines into one record per alternate allele. Header
// lines, lines with fewer than five columns and lines with an unusable
// position are skipped. The result is never nil.
func Parse(r io.Reader) ([]*models.VariantRecord, error) {
	records := []*models.VariantRecord{}
	skipped := 0

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		columns := strings.Split(line, "\t")
		if len(columns) < minimumColumns {
			skipped++
			continue
		}

		pos, err := strconv.Atoi(strings.TrimSpace(columns[posCol]))
		if err != nil || pos < 1 {
			skipped++
			continue
		}

		chrom := strings.TrimSpace(columns[chromCol])
		ref := strings.TrimSpace(columns[refCol])
		rsid := ExtractRsid(columns[idCol])

		for _, alt := range splitAlternates(columns[altCol]) {
			records = append(records, models.NewVariantRecord(chrom, pos, ref, alt, rsid))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading vcf")
	}

	if skipped > 0 {
		fmt.Printf("[%s] - Skipped %d malformed vcf lines\n", time.Now(), skipped)
	}
	return records, nil
}

// ExtractRsid returns the first rs token of a VCF ID column, or "" when
// there is none ("." or only non-dbSNP ids).
func ExtractRsid(id string) string {
	for _, token := range strings.FieldsFunc(id, func(r rune) bool { return r == ';' || r == ',' }) {
		token = strings.TrimSpace(token)
		if len(token) > 2 && strings.EqualFold(token[:2], "rs") {
			if _, err := strconv.ParseUint(token[2:], 10, 64); err == nil {
				return "rs" + token[2:]
			}
		}
	}
	return ""
}

// splitAlternates yields one entry per ALT allele, keeping "." for a
// site without alternates.
func splitAlternates(alt string) []string {
	alt = strings.TrimSpace(alt)
	if alt == "" {
		return []string{"."}
	}

	var alleles []string
	for _, allele := range strings.Split(alt, ",") {
		if allele = strings.TrimSpace(allele); allele != "" {
			alleles = append(alleles, allele)
		}
	}
	if len(alleles) == 0 {
		return []string{"."}
	}
	return alleles
}
