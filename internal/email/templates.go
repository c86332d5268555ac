package email

import "fmt"

func OTPMessage(otp string) (subject, body string) {
	return "Your ArogyaVax verification code",
		fmt.Sprintf("Your one-time password is %s. It expires in a few minutes.", otp)
}

func ReminderMessage(name, message string) (subject, body string) {
	return "Vaccination reminder",
		fmt.Sprintf("Hello %s,\n\n%s\n\nPlease visit your nearest vaccination centre.\n\nArogyaVax", name, message)
}

func AdministeredMessage(name, vaccine, date string) (subject, body string) {
	return "Vaccination recorded",
		fmt.Sprintf("Hello %s,\n\nYour %s dose on %s has been recorded. A certificate can be issued by your hospital.\n\nArogyaVax", name, vaccine, date)
}
