package device

// ReportBuilder is an interface for device input states that can be packed into
// the state block of an input report.
type ReportBuilder interface {
	// BuildReport encodes the input state into a byte slice for the report body.
	BuildReport() []byte
}
