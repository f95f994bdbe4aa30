package models

import (
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v2"
)

const ConfigFileEnvVar = "VARANNO_CONFIG_FILE"

type Config struct {
	Debug          bool   `yaml:"debug" envconfig:"VARANNO_DEBUG"`
	SemVer         string `yaml:"semVer" envconfig:"VARANNO_SEMVER" default:"0.1.0"`
	ServiceContact string `yaml:"serviceContact" envconfig:"VARANNO_SERVICE_CONTACT" default:"mailto:admin@localhost"`

	Api struct {
		Url                   string `yaml:"url" envconfig:"VARANNO_API_URL" default:"http://localhost:5000"`
		Port                  string `yaml:"port" envconfig:"VARANNO_API_INTERNAL_PORT" default:"5000"`
		WorkDirectory         string `yaml:"workDirectory" envconfig:"VARANNO_API_WORK_DIR" default:"tmp"`
		MaxUploadSizeMb       int64  `yaml:"maxUploadSizeMb" envconfig:"VARANNO_API_MAX_UPLOAD_MB" default:"512"`
		MaxConcurrentSessions int64  `yaml:"maxConcurrentSessions" envconfig:"VARANNO_API_MAX_CONCURRENT_SESSIONS" default:"2"`
		SessionTtlMinutes     int    `yaml:"sessionTtlMinutes" envconfig:"VARANNO_API_SESSION_TTL_MINUTES" default:"120"`
		SweepIntervalMinutes  int    `yaml:"sweepIntervalMinutes" envconfig:"VARANNO_API_SWEEP_INTERVAL_MINUTES" default:"15"`
	} `yaml:"api"`

	Tools struct {
		AssemblyId          string `yaml:"assemblyId" envconfig:"VARANNO_ASSEMBLY_ID" default:"GRCh38"`
		ReferenceGenomePath string `yaml:"referenceGenomePath" envconfig:"VARANNO_REFERENCE_PATH" default:"data/hg38.fa"`
		DbsnpPath           string `yaml:"dbsnpPath" envconfig:"VARANNO_DBSNP_PATH"`
		BwaPath             string `yaml:"bwaPath" envconfig:"VARANNO_BWA_PATH" default:"bwa"`
		SamtoolsPath        string `yaml:"samtoolsPath" envconfig:"VARANNO_SAMTOOLS_PATH" default:"samtools"`
		BcftoolsPath        string `yaml:"bcftoolsPath" envconfig:"VARANNO_BCFTOOLS_PATH" default:"bcftools"`
		Threads             int    `yaml:"threads" envconfig:"VARANNO_TOOL_THREADS" default:"1"`
	} `yaml:"tools"`

	Annotation struct {
		TimeoutSeconds int    `yaml:"timeoutSeconds" envconfig:"VARANNO_ANNOTATION_TIMEOUT_SECONDS" default:"10"`
		NcbiUrl        string `yaml:"ncbiUrl" envconfig:"VARANNO_NCBI_URL" default:"https://api.ncbi.nlm.nih.gov/variation/v0"`
		MyVariantUrl   string `yaml:"myVariantUrl" envconfig:"VARANNO_MYVARIANT_URL" default:"https://myvariant.info/v1"`
		EnsemblUrl     string `yaml:"ensemblUrl" envconfig:"VARANNO_ENSEMBL_URL" default:"https://rest.ensembl.org"`
		UcscUrl        string `yaml:"ucscUrl" envconfig:"VARANNO_UCSC_URL" default:"https://api.genome.ucsc.edu"`
		UserAgent      string `yaml:"userAgent" envconfig:"VARANNO_USER_AGENT" default:"varanno/0.1"`
	} `yaml:"annotation"`

	Elasticsearch struct {
		Url         string `yaml:"url" envconfig:"VARANNO_ES_URL"`
		Username    string `yaml:"username" envconfig:"VARANNO_ES_USERNAME"`
		Password    string `yaml:"password" envconfig:"VARANNO_ES_PASSWORD"`
		ExportIndex string `yaml:"exportIndex" envconfig:"VARANNO_ES_EXPORT_INDEX" default:"variant-exports"`
	} `yaml:"elasticsearch"`
}

// LoadConfig gathers the configuration from environment variables
// (falling back to defaults) and then overlays the YAML file named by
// VARANNO_CONFIG_FILE, if any. Keys present in the file win.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, errors.Wrap(err, "processing environment")
	}

	if path := strings.TrimSpace(os.Getenv(ConfigFileEnvVar)); path != "" {
		if err := cfg.OverlayYamlFile(path); err != nil {
			return nil, err
		}
	}

	return &cfg, nil
}

func (cfg *Config) OverlayYamlFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "opening config file %s", path)
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
		return errors.Wrapf(err, "decoding config file %s", path)
	}
	return nil
}

// IsElasticsearchEnabled reports whether exports may be published.
func (cfg *Config) IsElasticsearchEnabled() bool {
	return strings.TrimSpace(cfg.Elasticsearch.Url) != ""
}
