package catalog

// DefaultVersion labels the built-in reference catalog.
const DefaultVersion = "2024-01"

var defaultSteps = []StepDefinition{
	{ID: "dob", Title: "Confirm Date of Birth", Description: "Verify the customer's date of birth matches their documents"},
	{ID: "pincode", Title: "Confirm Pin Code", Description: "Verify the customer's pin code matches their address"},
	{ID: "location", Title: "Location Check", Description: "Check latitude and longitude reported by GPS"},
	{ID: "pancard", Title: "PAN Card Live Validation", Description: "Customer shows PAN card to camera and OCR extracts details"},
	{ID: "selfie", Title: "Selfie Capture", Description: "Liveness check with an agent-captured photo"},
	{ID: "facecompare", Title: "Face Compare vs PAN Card", Description: "Compare the customer's face with the PAN card photo"},
	{ID: "panaadhaar", Title: "PAN vs Aadhaar Compare", Description: "Compare name, date of birth and address between PAN and Aadhaar"},
	{ID: "proofaddress", Title: "Proof of Address", Description: "Verify another government ID as address proof"},
	{ID: "supporting", Title: "Supporting Document", Description: "Verify supporting documents such as Udyam registration"},
}

var defaultQuestions = []QuestionCategory{
	{
		Name: "Aadhaar Card",
		Questions: []Question{
			{ID: "aadhaar-readable", Text: "Is the Aadhaar card clearly visible and readable?"},
			{ID: "aadhaar-name-match", Text: "Does the name match across all documents?"},
			{ID: "aadhaar-photo-match", Text: "Is the photograph clear and does it match the customer?"},
			{ID: "aadhaar-digits-visible", Text: "Are all 12 digits of the Aadhaar number visible?"},
		},
	},
	{
		Name: "PAN Card",
		Questions: []Question{
			{ID: "pan-original", Text: "Is the PAN card original and not a photocopy?"},
			{ID: "pan-number-visible", Text: "Is the PAN number clearly visible?"},
			{ID: "pan-name-match", Text: "Does the name match with other documents?"},
			{ID: "pan-not-tampered", Text: "Is the card free of damage or tampering?"},
		},
	},
	{
		Name: "Bank Statement",
		Questions: []Question{
			{ID: "bank-recent", Text: "Is the statement recent (within 3 months)?"},
			{ID: "bank-address-match", Text: "Does the address match with other documents?"},
			{ID: "bank-details-visible", Text: "Are bank details clearly visible?"},
			{ID: "bank-original", Text: "Is it an original statement from the bank?"},
		},
	},
}

// Default returns the built-in reference catalog (9 steps, 12 questions).
func Default() *Catalog {
	c, err := New(DefaultVersion, defaultSteps, defaultQuestions)
	if err != nil {
		panic("catalog: invalid built-in catalog: " + err.Error())
	}
	return c
}
