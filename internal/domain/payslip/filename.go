package payslip

import "strings"

const fileNamePrefix = "salary-slip"

var separatorReplacer = strings.NewReplacer("/", "_", "\\", "_")

// FileName builds salary-slip-<name>-<label>.<ext>. Separators inside the
// components are replaced so the result is a single path element.
func FileName(employeeName, periodLabel, ext string) string {
	name := fileNamePrefix + "-" + separatorReplacer.Replace(employeeName) + "-" + separatorReplacer.Replace(periodLabel)
	ext = strings.TrimPrefix(ext, ".")
	if ext == "" {
		return name
	}
	return name + "." + ext
}
