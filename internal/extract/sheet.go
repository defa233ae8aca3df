package extract

// SheetConverter converts a spreadsheet workbook into delimited text, one
// line per row, so spreadsheet sources share the tabular pipeline with CSV
// files. Conversion is provided by the surrounding product; the router only
// depends on this interface.
type SheetConverter interface {
	ConvertToDelimited(path string) (string, error)
}
