package metrics

// Label carries the two display languages side by side. The dashboard
// always renders Hindi first, English second.
type Label struct {
	EN string
	HI string
}

// Labels is the shared bilingual vocabulary for the dashboard UI.
var Labels = map[string]Label{
	"households":  {EN: "Households", HI: "परिवार"},
	"personDays":  {EN: "Person Days", HI: "व्यक्ति दिवस"},
	"works":       {EN: "Works", HI: "कार्य"},
	"expenditure": {EN: "Expenditure", HI: "व्यय"},
	"completion":  {EN: "Completion Rate", HI: "पूर्णता दर"},
	"district":    {EN: "District", HI: "जिला"},
	"month":       {EN: "Month", HI: "माह"},
	"select":      {EN: "Select", HI: "चुनें"},
	"loading":     {EN: "Loading...", HI: "लोड हो रहा है..."},
	"noData":      {EN: "No data available", HI: "कोई डेटा उपलब्ध नहीं"},
	"error":       {EN: "Error loading data", HI: "डेटा लोड करने में त्रुटि"},
}

var monthNamesEN = [12]string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

var monthNamesHI = [12]string{
	"जन", "फर", "मार्च", "अप्रैल", "मई", "जून",
	"जुल", "अग", "सित", "अक्ट", "नव", "दिस",
}
