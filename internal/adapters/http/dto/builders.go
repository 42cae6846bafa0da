package dto

// BookRequest is the body of the book build endpoints. A field that is absent
// or JSON null is left unset on the builder.
type BookRequest struct {
	ISBN        *string `json:"isbn"`
	Title       *string `json:"title"`
	Genre       *string `json:"genre"`
	Author      *string `json:"author"`
	Description *string `json:"description"`
}

// BookResponse is a built book. Optional fields are omitted when unset.
type BookResponse struct {
	ISBN        string  `json:"isbn"`
	Title       string  `json:"title"`
	Genre       *string `json:"genre,omitempty"`
	Author      *string `json:"author,omitempty"`
	Description *string `json:"description,omitempty"`
}

// ValidateBookResponse is the result of a dry-run validation.
type ValidateBookResponse struct {
	Valid      bool     `json:"valid"`
	Violations []string `json:"violations"`
}

// BatchBookRequest is the body of the batch build endpoint. The configured
// batch limit is enforced by the handler; max here is the hard ceiling.
type BatchBookRequest struct {
	Drafts []BookRequest `json:"drafts" validate:"required,min=1,max=1000"`
}

// BatchBookItem is the outcome for one draft, in request order.
type BatchBookItem struct {
	Index int           `json:"index"`
	Book  *BookResponse `json:"book,omitempty"`
	Error *ErrorDetail  `json:"error,omitempty"`
}

// BatchBookResponse summarises a batch build.
type BatchBookResponse struct {
	Results  []BatchBookItem `json:"results"`
	Built    int             `json:"built"`
	Rejected int             `json:"rejected"`
}

// PhoneRequest is the body of the phone assembly endpoint.
type PhoneRequest struct {
	Preset string `json:"preset" validate:"required,notblank,oneof=android iphone"`
}

// PhoneResponse is an assembled phone and its manual.
type PhoneResponse struct {
	Preset            string `json:"preset"`
	SimType           string `json:"simType"`
	NetworkConnection string `json:"networkConnection"`
	Country           string `json:"country"`
	Roaming           string `json:"roaming"`
	Manual            string `json:"manual"`
}

// PresetsResponse lists the supported phone presets.
type PresetsResponse struct {
	Presets []string `json:"presets"`
}
