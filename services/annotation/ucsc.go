package annotation

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"varanno/api/models"
	"varanno/api/models/constants"
	as "varanno/api/models/constants/annotation-source"
	assemblyId "varanno/api/models/constants/assembly-id"
	"varanno/api/utils"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
)

const ucscGeneTrack = "knownGene"

// UcscProvider resolves an rsid to a position with the UCSC search api
// and then reads the overlapping gene from the knownGene track. It only
// ever supplies the gene.
type UcscProvider struct {
	baseUrl   string
	database  string
	client    *http.Client
	userAgent string
}

type ucscGene struct {
	GeneName string `mapstructure:"geneName"`
	Name2    string `mapstructure:"name2"`
	Name     string `mapstructure:"name"`
}

type ucscLocation struct {
	Chrom string
	Start int
	End   int
}

func (l ucscLocation) String() string {
	return fmt.Sprintf("%s:%d-%d", l.Chrom, l.Start, l.End)
}

func NewUcscProvider(baseUrl string, assId constants.AssemblyId, client *http.Client, userAgent string) *UcscProvider {
	return &UcscProvider{
		baseUrl:   strings.TrimRight(baseUrl, "/"),
		database:  assemblyId.ToUcscDatabase(assId),
		client:    client,
		userAgent: userAgent,
	}
}

func (p *UcscProvider) Source() constants.AnnotationSource { return as.UCSC }

func (p *UcscProvider) Capabilities() Capability { return 0 }

func (p *UcscProvider) Lookup(ctx context.Context, rsid string) (*models.Annotation, error) {
	rsid = strings.TrimSpace(rsid)
	ann := models.NewEmptyAnnotation()

	location, err := p.locate(ctx, rsid)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return &ann, nil
	}

	query := url.Values{}
	query.Set("genome", p.database)
	query.Set("track", ucscGeneTrack)
	query.Set("chrom", location.Chrom)
	query.Set("start", strconv.Itoa(location.Start))
	query.Set("end", strconv.Itoa(location.End))

	doc, err := utils.GetJsonContainer(ctx, p.client, fmt.Sprintf("%s/getData/track?%s", p.baseUrl, query.Encode()), p.userAgent)
	if err != nil {
		return nil, err
	}

	for _, item := range children(doc, ucscGeneTrack) {
		var gene ucscGene
		if err := mapstructure.WeakDecode(item.Data(), &gene); err != nil {
			continue
		}
		for _, candidate := range []string{gene.GeneName, gene.Name2, gene.Name} {
			if strings.TrimSpace(candidate) != "" {
				ann.Gene = strings.TrimSpace(candidate)
				break
			}
		}
		if ann.Gene != "" {
			break
		}
	}

	if ann.HasPrimary() {
		ann.Link = fmt.Sprintf("https://genome.ucsc.edu/cgi-bin/hgTracks?db=%s&position=%s", p.database, url.QueryEscape(location.String()))
	}
	return &ann, nil
}

// locate returns nil when the search succeeded but matched nothing.
func (p *UcscProvider) locate(ctx context.Context, rsid string) (*ucscLocation, error) {
	query := url.Values{}
	query.Set("search", rsid)
	query.Set("genome", p.database)

	doc, err := utils.GetJsonContainer(ctx, p.client, fmt.Sprintf("%s/search?%s", p.baseUrl, query.Encode()), p.userAgent)
	if err != nil {
		return nil, err
	}

	// only a match named after the rsid itself locates it
	for _, track := range children(doc, "positionMatches") {
		for _, match := range children(track, "matches") {
			position := stringAt(match, "position")
			if position == "" {
				continue
			}
			if strings.EqualFold(stringAt(match, "posName"), rsid) {
				return parseUcscPosition(position)
			}
		}
	}
	return nil, nil
}

// parseUcscPosition parses "chr1:169,549,810-169,549,811".
func parseUcscPosition(position string) (*ucscLocation, error) {
	clean := strings.ReplaceAll(strings.TrimSpace(position), ",", "")

	chrom, span, found := strings.Cut(clean, ":")
	if !found || chrom == "" {
		return nil, errors.Errorf("malformed ucsc position %q", position)
	}
	startText, endText, found := strings.Cut(span, "-")
	if !found {
		endText = startText
	}

	start, err := strconv.Atoi(startText)
	if err != nil {
		return nil, errors.Wrapf(err, "malformed ucsc position %q", position)
	}
	end, err := strconv.Atoi(endText)
	if err != nil {
		return nil, errors.Wrapf(err, "malformed ucsc position %q", position)
	}
	if end <= start {
		end = start + 1
	}

	return &ucscLocation{Chrom: chrom, Start: start, End: end}, nil
}
