// Command errortable sweeps the approximation engine over a range of term
// counts and writes the (r, error) pairs as a sortable two-column HTML table.
//
// Term counts below 2 are outside the engine's domain; they are recorded
// with a sentinel error of -1 without invoking the engine.
package main

import (
	"flag"
	"fmt"
	"html/template"
	"log"
	"os"

	"github.com/akmonengine/chord"
)

type row struct {
	R     int
	Error float64
}

var tableTemplate = template.Must(template.New("table").Parse(`<table id="myTable">
    <tr>
        <th onclick="sortTable(0)">r</th>
        <th onclick="sortTable(1)">error</th>
    </tr>
{{- range . }}
    <tr>
        <td>{{ .R }}</td>
        <td>{{ .Error }}</td>
    </tr>
{{- end }}
</table>
`))

func main() {
	maxTerms := flag.Int("max", 100, "largest term count to sweep")
	output := flag.String("o", "table.html", "output file")
	flag.Parse()

	rows := make([]row, 0, *maxTerms+1)
	for r := 0; r <= *maxTerms; r++ {
		if r < 2 {
			rows = append(rows, row{R: r, Error: -1})
			continue
		}
		approx, err := chord.LowerApprox(r)
		if err != nil {
			log.Fatalf("lower approximation for r=%d: %v", r, err)
		}
		rows = append(rows, row{R: r, Error: approx.Err})
		fmt.Printf("%d    %v\n", r, approx.Err)
	}

	f, err := os.Create(*output)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	if err := tableTemplate.Execute(f, rows); err != nil {
		log.Fatal(err)
	}
}
