package model

type Certificate struct {
	RecordID          int64   `json:"record_id"`
	CertificateNumber string  `json:"certificate_number"`
	PatientName       string  `json:"patient_name"`
	VaccineName       string  `json:"vaccine_name"`
	HospitalName      string  `json:"hospital_name"`
	DateAdministered  Date    `json:"date_administered"`
	DownloadURL       *string `json:"download_url,omitempty"`
}

// CertificateSource is everything needed to render a certificate.
type CertificateSource struct {
	RecordID          int64   `db:"id"`
	PatientID         int64   `db:"patient_id"`
	Status            string  `db:"status"`
	CertificateIssued bool    `db:"certificate_issued"`
	CertificateNumber *string `db:"certificate_number"`
	CertificateKey    *string `db:"certificate_key"`
	PatientName       string  `db:"patient_name"`
	VaccineName       *string `db:"vaccine_name"`
	HospitalName      *string `db:"hospital_name"`
	DateAdministered  *Date   `db:"date_administered"`
}
