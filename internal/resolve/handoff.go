package resolve

import "github.com/bigFin/glimpse/internal/types"

// NewScanRequest projects resolved settings onto the filesystem scanner
// contract. Exclude entries are split by their kind tag so the scanner
// consumes literal paths and glob patterns through separate fields.
func NewScanRequest(settings types.Settings) types.ScanRequest {
	request := types.ScanRequest{
		Paths:            append([]string{}, settings.Paths...),
		MaxFileSize:      settings.MaxSize,
		MaxDepth:         settings.MaxDepth,
		IncludePatterns:  copyStrings(settings.Includes),
		ShowHidden:       settings.ShowHidden,
		RespectGitignore: !settings.NoIgnore,
		Threads:          settings.Threads,
	}
	for _, entry := range settings.Excludes {
		if entry.IsFile() {
			request.ExcludeFiles = append(request.ExcludeFiles, entry.Value)
			continue
		}
		request.ExcludePatterns = append(request.ExcludePatterns, entry.Value)
	}
	return request
}

// NewRenderRequest projects resolved settings onto the renderer contract.
func NewRenderRequest(settings types.Settings) types.RenderRequest {
	return types.RenderRequest{
		Format:        settings.Output,
		OutputFile:    settings.OutputFile,
		PDFPath:       settings.PDFPath,
		PrintToStdout: settings.Print,
		Interactive:   settings.Interactive,
	}
}
