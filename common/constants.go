package common

const (
	SrcFileExt     = ".brik"
	ConfigFileName = "brik.toml"
	BrikVersion    = "0.1.0"
)
