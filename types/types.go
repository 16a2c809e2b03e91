package types

// ConversionRecord describes one converted texture as stored in the manifest
type ConversionRecord struct {
	ID             int64  `json:"id"`
	SourcePath     string `json:"source_path"`
	Folder         string `json:"folder"`
	Identifier     string `json:"identifier"`
	Category       string `json:"category"`
	Format         string `json:"format"`
	Width          int    `json:"width"`
	Height         int    `json:"height"`
	ModifiedAt     string `json:"modified_at"`
	MERFile        string `json:"mer_file"`
	NormalFile     string `json:"normal_file"`
	DescriptorFile string `json:"descriptor_file"`
	RunID          string `json:"run_id"`
	ConvertedAt    string `json:"converted_at"`
}

// CategoryCount is the number of converted textures in a material category
type CategoryCount struct {
	Category string
	Count    int
}
