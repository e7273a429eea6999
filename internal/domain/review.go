package domain

// Review is a single product review. CreatedAt stays a string in the
// source encoding (ISO-8601) because it doubles as the pagination cursor.
type Review struct {
	ID        string   `json:"id"`
	Author    string   `json:"author"`
	Rating    int      `json:"rating"`
	Comment   string   `json:"comment"`
	Photos    []string `json:"photos"`
	CreatedAt string   `json:"created_at"`
}

// ReviewQuery filters one product's review listing. Rating 0 means no
// rating filter. Cursor is the created_at boundary for keyset paging.
type ReviewQuery struct {
	ProductID  string `json:"productId" query:"productId"`
	Rating     int    `json:"rating" query:"rating"`
	WithPhotos bool   `json:"withPhotos" query:"withPhotos"`
	Limit      int    `json:"limit" query:"limit"`
	Cursor     string `json:"cursor" query:"cursor"`
}

// ReviewSummary aggregates the full review set of a product, independent
// of any listing filters.
type ReviewSummary struct {
	Count int     `json:"count"`
	Avg   float64 `json:"avg"`
	S1    int     `json:"s1"`
	S2    int     `json:"s2"`
	S3    int     `json:"s3"`
	S4    int     `json:"s4"`
	S5    int     `json:"s5"`
}

// ReviewPage is one keyset page plus the product-level summary.
// NextCursor is empty when no further page exists.
type ReviewPage struct {
	Items      []Review      `json:"items"`
	Summary    ReviewSummary `json:"summary"`
	NextCursor string        `json:"nextCursor,omitempty"`
}

// ReviewAck acknowledges a submitted review. Persistence is deferred to a
// real backend; the id is generated so clients can correlate.
type ReviewAck struct {
	OK bool   `json:"ok"`
	ID string `json:"id,omitempty"`
}

// CartLine is one sanitized cart entry
type CartLine struct {
	ID       ProductID `json:"id"`
	Name     string    `json:"name"`
	Price    float64   `json:"price"`
	Quantity int       `json:"quantity"`
	Image    string    `json:"image"`
}
