package domain

// Resource names a collection of records.
type Resource string

const (
	ResourceProducts     Resource = "products"
	ResourceStocks       Resource = "stocks"
	ResourceCustomers    Resource = "customers"
	ResourceDistributors Resource = "distributors"
	ResourceSalesStaff   Resource = "sales_staff"
	ResourceFunds        Resource = "funds"
	ResourceChallans     Resource = "challans"
	ResourceOrders       Resource = "orders"
	ResourceAuditLogs    Resource = "audit_logs"
)

var knownResources = map[Resource]bool{
	ResourceProducts:     true,
	ResourceStocks:       true,
	ResourceCustomers:    true,
	ResourceDistributors: true,
	ResourceSalesStaff:   true,
	ResourceFunds:        true,
	ResourceChallans:     true,
	ResourceOrders:       true,
	ResourceAuditLogs:    true,
}

// ParseResource returns ErrUnknownResource for names outside the fixed set.
func ParseResource(name string) (Resource, error) {
	r := Resource(name)
	if !knownResources[r] {
		return "", ErrUnknownResource
	}
	return r, nil
}

// Writable reports whether records of r can be created, updated or deleted
// through the API.
func (r Resource) Writable() bool {
	return r != ResourceAuditLogs
}

// AuditAction is the kind of write recorded in audit_logs.
type AuditAction string

const (
	AuditCreate AuditAction = "create"
	AuditUpdate AuditAction = "update"
	AuditDelete AuditAction = "delete"
)

// FileType represents the allowed file types for upload.
type FileType string

const (
	FileTypePDF  FileType = "pdf"
	FileTypeJPG  FileType = "jpg"
	FileTypePNG  FileType = "png"
	FileTypeXLSX FileType = "xlsx"
)

// AllowedFileTypes maps FileType to the content type stored with the object.
var AllowedFileTypes = map[FileType]string{
	FileTypePDF:  "application/pdf",
	FileTypeJPG:  "image/jpeg",
	FileTypePNG:  "image/png",
	FileTypeXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

// AllowedExtensions maps file extensions (without dot) to FileType.
var AllowedExtensions = map[string]FileType{
	"pdf":  FileTypePDF,
	"jpg":  FileTypeJPG,
	"jpeg": FileTypeJPG,
	"png":  FileTypePNG,
	"xlsx": FileTypeXLSX,
}

// sniffedTypes maps http.DetectContentType results to the file types they can
// legitimately belong to. xlsx files are zip archives.
var sniffedTypes = map[string]FileType{
	"application/pdf": FileTypePDF,
	"image/jpeg":      FileTypeJPG,
	"image/png":       FileTypePNG,
	"application/zip": FileTypeXLSX,
}

// MatchesSniffedType reports whether content sniffed as detected is
// consistent with the declared file type.
func MatchesSniffedType(ft FileType, detected string) bool {
	return sniffedTypes[detected] == ft
}
