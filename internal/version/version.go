package version

const (
	AppName     = "Barkeep"
	AppFullName = "Barkeep Discord Bot"
	Version     = "0.3.0"
)
