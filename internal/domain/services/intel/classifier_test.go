package intel

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"honeypot-lab/internal/domain/models"
)

func sessionWithMessages(texts ...string) *models.Session {
	sess := models.NewSession("test-session")
	for _, text := range texts {
		sess.History = append(sess.History, models.Message{Sender: models.SenderScammer, Text: text})
		sess.TurnCount++
	}
	return sess
}

func TestClassifyTypePriority(t *testing.T) {
	c := NewScamClassifier(testLogger())

	tests := []struct {
		name string
		text string
		want models.ScamType
	}{
		{"upi wins over banking", "Send money via paytm to unblock your bank account", models.ScamTypeUPIFraud},
		{"banking", "Your KYC verification is pending", models.ScamTypeBanking},
		{"otp", "Share the OTP we just sent you", models.ScamTypeOTPFraud},
		{"phishing", "Click the link to claim", models.ScamTypePhishing},
		{"lottery", "Congratulations! You are our lucky draw winner", models.ScamTypeLottery},
		{"investment", "Double your money with our trading scheme", models.ScamTypeInvestment},
		{"fallback", "Hello, is this a good time to talk?", models.ScamTypeBanking},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess := sessionWithMessages(tt.text)
			assert.Equal(t, tt.want, c.ClassifyType(sess))
		})
	}
}

func TestClassifyTypeUPIHandleShortCircuits(t *testing.T) {
	c := NewScamClassifier(testLogger())

	sess := sessionWithMessages("Your bank account needs KYC verification")
	sess.Intelligence.UPIIDs = []string{"scammer@paytm"}

	assert.Equal(t, models.ScamTypeUPIFraud, c.ClassifyType(sess))
}

func TestClassifyTypePhishingFromLinks(t *testing.T) {
	c := NewScamClassifier(testLogger())

	// No trigger word in the text; the extracted link decides
	sess := sessionWithMessages("Go there and enter your details")
	sess.Intelligence.PhishingLinks = []string{"https://evil.example.com"}

	assert.Equal(t, models.ScamTypePhishing, c.ClassifyType(sess))
}

func TestAssessSophisticationLow(t *testing.T) {
	c := NewScamClassifier(testLogger())

	sess := sessionWithMessages("send money now")

	assert.Equal(t, models.SophisticationLow, c.AssessSophistication(sess))
}

func TestAssessSophisticationMedium(t *testing.T) {
	c := NewScamClassifier(testLogger())

	// Long messages (+3) plus one populated entity category (+1)
	long := strings.Repeat("this message pads out well past twenty words per turn ", 3)
	sess := sessionWithMessages(long)
	sess.Intelligence.UPIIDs = []string{"scammer@paytm"}

	assert.Equal(t, models.SophisticationMedium, c.AssessSophistication(sess))
}

func TestAssessSophisticationHigh(t *testing.T) {
	c := NewScamClassifier(testLogger())

	long := strings.Repeat("this message pads out well past twenty words per turn ", 3)
	sess := sessionWithMessages(long)
	sess.Intelligence.UPIIDs = []string{"scammer@paytm"}
	sess.Intelligence.BankAccounts = []string{"123456789012"}
	sess.Intelligence.PhoneNumbers = []string{"+919876543210"}
	sess.Intelligence.OrganizationalClues = []string{"branch_mumbai"}

	assert.Equal(t, models.SophisticationHigh, c.AssessSophistication(sess))
}

func TestAssessSophisticationNotSticky(t *testing.T) {
	c := NewScamClassifier(testLogger())

	long := strings.Repeat("this message pads out well past twenty words per turn ", 3)
	sess := sessionWithMessages(long)
	sess.Intelligence.UPIIDs = []string{"scammer@paytm"}
	assert.Equal(t, models.SophisticationMedium, c.AssessSophistication(sess))

	// A flood of short messages drags the average back down
	for i := 0; i < 9; i++ {
		sess.History = append(sess.History, models.Message{Sender: models.SenderScammer, Text: "ok"})
		sess.TurnCount++
	}
	assert.Equal(t, models.SophisticationLow, c.AssessSophistication(sess))
}
