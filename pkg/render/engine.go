package render

import (
	"fmt"
	"os/exec"
	"runtime"
)

// PDFEngine compiles a TeX file into a PDF in outDir, keeping build
// artifacts in auxDir.
type PDFEngine interface {
	Compile(texPath, outDir, auxDir string) error
}

// Latexmk shells out to latexmk, which must be on PATH.
type Latexmk struct{}

// Compile runs latexmk on the TeX file.
func (Latexmk) Compile(texPath, outDir, auxDir string) error {
	cmd := exec.Command("latexmk",
		"--pdf",
		"--cd",
		texPath,
		fmt.Sprintf("--outdir=%s", outDir),
		fmt.Sprintf("--auxdir=%s", auxDir),
	)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("latexmk failed for %s: %w\n%s", texPath, err, output)
	}
	return nil
}

// OpenFile hands a file to the platform opener.
func OpenFile(path string) error {
	opener := "xdg-open"
	if runtime.GOOS == "darwin" {
		opener = "open"
	}
	return exec.Command(opener, path).Start()
}
