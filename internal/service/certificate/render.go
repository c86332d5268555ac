package certificate

import (
	"bytes"
	"text/template"

	"github.com/jwalitptl/arogyavax/internal/model"
)

var certificateTmpl = template.Must(template.New("certificate").Parse(`ArogyaVax VACCINATION CERTIFICATE
=================================

Certificate No : {{.CertificateNumber}}
Beneficiary    : {{.PatientName}}
Vaccine        : {{.VaccineName}}
Administered   : {{.DateAdministered}}
Centre         : {{.HospitalName}}

This certificate confirms the vaccination above was recorded in ArogyaVax.
`))

// Render returns the plain-text certificate document.
func Render(c *model.Certificate) ([]byte, error) {
	var buf bytes.Buffer
	if err := certificateTmpl.Execute(&buf, c); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
