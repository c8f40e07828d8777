// Package pdftest builds minimal, well-formed single-page PDFs for tests.
// Offsets in the cross-reference table are computed while writing, so the
// output parses under strict readers.
package pdftest

import (
	"bytes"
	"fmt"
	"strings"
)

var textEscaper = strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`)

// Build returns PDF bytes whose single page shows the given lines. The page
// font declares WinAnsiEncoding and the lines are re-encoded to Latin-1, so
// accented Spanish text round-trips through extraction. Lines are joined
// into one literal string with escaped newlines, preserving line boundaries
// in the extracted text.
func Build(lines ...string) []byte {
	escaped := make([]string, len(lines))
	for i, l := range lines {
		escaped[i] = textEscaper.Replace(l)
	}
	stream := toLatin1(fmt.Sprintf("BT\n/F1 12 Tf\n50 750 Td\n(%s) Tj\nET", strings.Join(escaped, `\n`)))

	objects := [][]byte{
		[]byte("<< /Type /Catalog /Pages 2 0 R >>"),
		[]byte("<< /Type /Pages /Kids [3 0 R] /Count 1 >>"),
		[]byte("<< /Type /Page /Parent 2 0 R /Resources << /Font << /F1 4 0 R >> >> /MediaBox [0 0 612 792] /Contents 5 0 R >>"),
		[]byte("<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>"),
		[]byte(fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream)),
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	offsets := make([]int, len(objects)+1)
	for i, body := range objects {
		offsets[i+1] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, body)
	}

	xrefOffset := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for i := 1; i <= len(objects); i++ {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offsets[i])
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xrefOffset)
	return buf.Bytes()
}

func toLatin1(s string) []byte {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		if r > 0xFF {
			r = '?'
		}
		out = append(out, byte(r))
	}
	return out
}

// CalibrationCertificate returns a PDF resembling a typical calibration
// certificate upload.
func CalibrationCertificate() []byte {
	return Build(
		"Certificado: CERT-2026-001",
		"Certificado de Calibración de Válvula de Seguridad",
		"Serie: SN-12345-A",
		"Presión inicial: 100 PSI",
		"Presión final: 105 PSI",
		"Temperatura: 20 C",
		"Fecha: 16/02/2026",
		"Resultado: Aprobado",
		"Laboratorio: LabCal SAS",
	)
}

// MaintenanceReport returns a PDF resembling a typical maintenance report
// upload.
func MaintenanceReport() []byte {
	return Build(
		"Mantenimiento de Válvula de Seguridad",
		"Informe: MNT-2026-117",
		"Número de Serie: SN-77001-B",
		"Fecha de Mantenimiento: 03/03/2026",
		"Tipo: Preventivo",
		"Trabajos: Limpieza y ajuste del resorte",
		"Estado: Operativo",
		"Próximo Mantenimiento: 03/09/2026",
		"Técnico: Juan Pérez",
	)
}
