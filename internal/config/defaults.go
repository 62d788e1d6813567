package config

const (
	// DefaultSuiteName is the <testsuite> name used when none is configured
	DefaultSuiteName = "jrep"
	// DefaultOutputDir is where the run summary is stored
	DefaultOutputDir = "storage"
	// DefaultSummaryFile is the run summary file name
	DefaultSummaryFile = "jrep-summary.json"
	// DefaultConfigFile is the YAML file read from the working directory when present
	DefaultConfigFile = ".jrep.yaml"
	// DefaultEnvFile is the dotenv file read from the working directory when present
	DefaultEnvFile = ".env"
)

// DefaultCommand is the test command wrapped by `jrep run` when none is given
var DefaultCommand = []string{"go", "test", "-json", "./..."}

// Environment variables recognised by Load
const (
	EnvSuiteName   = "JUNIT_REPORT_SUITE_NAME"
	EnvPackageName = "JUNIT_REPORT_PACKAGE_NAME"
	EnvSavePath    = "JUNIT_REPORT_SAVE_PATH"
	EnvFilePrefix  = "JUNIT_REPORT_FILE_PREFIX"
	EnvOutputDir   = "JUNIT_REPORT_OUTPUT_DIR"
	EnvS3Bucket    = "JUNIT_REPORT_S3_BUCKET"
	EnvS3Prefix    = "JUNIT_REPORT_S3_PREFIX"
	EnvS3Region    = "JUNIT_REPORT_S3_REGION"
)
