package cli

import "jrep/internal/config"

// Flags holds command-line flags
type Flags struct {
	ConfigFile  string
	SuiteName   string
	PackageName string
	SavePath    string
	FilePrefix  string
	S3Bucket    string
	S3Prefix    string
	S3Region    string
	NoProgress  bool
}

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		ConfigFile:  f.ConfigFile,
		SuiteName:   f.SuiteName,
		PackageName: f.PackageName,
		SavePath:    f.SavePath,
		FilePrefix:  f.FilePrefix,
		S3Bucket:    f.S3Bucket,
		S3Prefix:    f.S3Prefix,
		S3Region:    f.S3Region,
		NoProgress:  f.NoProgress,
	}
}
