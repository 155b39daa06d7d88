package display

import (
	"fmt"
	"io"

	"github.com/backmassage/clipcat/internal/term"
)

const banner = `      _ _                 _
  ___| (_)_ __   ___ __ _| |_
 / __| | | '_ \ / __/ _` + "`" + ` | __|
| (__| | | |_) | (_| (_| | |_
 \___|_|_| .__/ \___\__,_|\__|
         |_|`

// PrintBanner writes the ASCII art banner to w, in the accent color when
// colors are enabled.
func PrintBanner(w io.Writer) {
	fmt.Fprintln(w, term.Accent.Paint(banner))
}
