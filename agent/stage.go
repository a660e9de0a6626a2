package agent

// Stage is one step of the guided reporting conversation.
type Stage string

const (
	StageLanguage    Stage = "language"
	StageDistrict    Stage = "district"
	StagePanchayat   Stage = "panchayat"
	StageVillage     Stage = "village"
	StageStreet      Stage = "street"
	StageLandmark    Stage = "landmark"
	StageTitle       Stage = "title"
	StageCategory    Stage = "category"
	StageUrgency     Stage = "urgency"
	StageDescription Stage = "description"
	StageEvidence    Stage = "evidence"
	StageProcessing  Stage = "processing"
	StageSummary     Stage = "summary"
	StageCompleted   Stage = "completed"
)

// stageOrder is the fixed progression of the question stages. Evidence is
// the last entry that a plain text answer can advance out of.
var stageOrder = []Stage{
	StageDistrict,
	StagePanchayat,
	StageVillage,
	StageStreet,
	StageLandmark,
	StageTitle,
	StageCategory,
	StageUrgency,
	StageDescription,
	StageEvidence,
}

func stageIndex(s Stage) int {
	for i, st := range stageOrder {
		if st == s {
			return i
		}
	}
	return -1
}

// Language selects the prompt catalog for a session.
type Language string

const (
	LangEnglish Language = "en"
	LangTamil   Language = "ta"
	LangHindi   Language = "hi"
)

var ValidLanguage = map[Language]bool{
	LangEnglish: true,
	LangTamil:   true,
	LangHindi:   true,
}

// translation holds every localized string the conversation can emit.
type translation struct {
	LangCode string

	Welcome         string
	DistrictPrompt  string
	PanchayatPrompt string
	VillagePrompt   string
	StreetPrompt    string
	LandmarkPrompt  string
	TitlePrompt     string
	CategoryPrompt  string
	UrgencyPrompt   string
	DescPrompt      string
	EvidencePrompt  string
	EditPrompt      string
	AIError         string
	Completed       string
	SpeechError     string
}

func (t translation) promptFor(s Stage) string {
	switch s {
	case StageDistrict:
		return t.DistrictPrompt
	case StagePanchayat:
		return t.PanchayatPrompt
	case StageVillage:
		return t.VillagePrompt
	case StageStreet:
		return t.StreetPrompt
	case StageLandmark:
		return t.LandmarkPrompt
	case StageTitle:
		return t.TitlePrompt
	case StageCategory:
		return t.CategoryPrompt
	case StageUrgency:
		return t.UrgencyPrompt
	case StageDescription:
		return t.DescPrompt
	case StageEvidence:
		return t.EvidencePrompt
	default:
		return ""
	}
}

var translations = map[Language]translation{
	LangEnglish: {
		LangCode:        "en-US",
		Welcome:         "Hello. I am Arya, an AI social service investigator with CivicGuard. I'm here to help document the issue you are reporting. To start, please choose your preferred language below.",
		DistrictPrompt:  "Which district are you reporting from?",
		PanchayatPrompt: "Please tell me your Panchayat name.",
		VillagePrompt:   "Which village is this issue located in?",
		StreetPrompt:    "Enter the street or locality.",
		LandmarkPrompt:  "Do you want to add a nearby landmark? (Optional)",
		TitlePrompt:     "Give a short title for the issue.",
		CategoryPrompt:  "Select the issue category. Example: Roads, Water, Electricity.",
		UrgencyPrompt:   "How urgent is this issue? (Low / Medium / High)",
		DescPrompt:      "Please describe the issue in detail.",
		EvidencePrompt:  "Thank you for the details. Now, let's add some evidence.",
		EditPrompt:      "Of course. Let's make corrections. Please describe the issue again from the beginning, including any changes you'd like to make.",
		AIError:         "I'm sorry, I'm having trouble connecting to my AI services. Please try again in a moment.",
		Completed:       "Thank you for sharing this issue. Your report has been recorded.",
		SpeechError:     `Sorry, I couldn't find a match for "{0}". Please try again or select from the list.`,
	},
	LangTamil: {
		LangCode:        "ta-IN",
		Welcome:         "வணக்கம். நான் ஆர்யா, சிவிக் கார்டின் AI சமூக சேவை ஆய்வாளர். நீங்கள் புகாரளிக்கும் சிக்கலைப் ஆவணப்படுத்த நான் இங்கு இருக்கிறேன். தொடங்க, கீழே உங்கள் விருப்பமான மொழியைத் தேர்ந்தெடுக்கவும்.",
		DistrictPrompt:  "நீங்கள் எந்த மாவட்டத்தில் இருந்து புகார் தெரிவிக்கிறீர்கள்?",
		PanchayatPrompt: "தயவுசெய்து உங்கள் பஞ்சாயத்தின் பெயரை சொல்லுங்கள்.",
		VillagePrompt:   "இந்த பிரச்சினை எந்த கிராமத்தில் உள்ளது?",
		StreetPrompt:    "தெரு அல்லது பகுதியை உள்ளிடுங்கள்.",
		LandmarkPrompt:  "அருகிலுள்ள ஒரு அடையாள இடத்தை சேர்க்க விரும்புகிறீர்களா? (விருப்பத்தேர்வு)",
		TitlePrompt:     "பிரச்சினைக்கு ஒரு சுருக்கமான தலைப்பை கொடுங்கள்.",
		CategoryPrompt:  "பிரச்சினை வகையைத் தேர்ந்தெடுக்கவும். உதாரணம்: சாலைகள், தண்ணீர், மின்சாரம்.",
		UrgencyPrompt:   "இந்த பிரச்சினை எவ்வளவு அவசரமானது? (குறைவு / நடுத்தரம் / அதிகம்)",
		DescPrompt:      "தயவுசெய்து பிரச்சினையை விரிவாக விவரிக்கவும்.",
		EvidencePrompt:  "விவரங்களுக்கு நன்றி. இப்போது, சில ஆதாரங்களைச் சேர்ப்போம்.",
		EditPrompt:      "நிச்சயமாக. திருத்தங்கள் செய்வோம். நீங்கள் செய்ய விரும்பும் மாற்றங்கள் உட்பட, சிக்கலை மீண்டும் முதலில் இருந்து விவரிக்கவும்.",
		AIError:         "மன்னிக்கவும், எனது AI சேவைகளுடன் இணைவதில் சிக்கல் உள்ளது. சிறிது நேரத்தில் மீண்டும் முயற்சிக்கவும்.",
		Completed:       "இந்தச் சிக்கலைப் பகிர்ந்தமைக்கு நன்றி. உங்கள் அறிக்கை பதிவு செய்யப்பட்டுள்ளது.",
		SpeechError:     `மன்னிக்கவும், "{0}"க்கு பொருத்தம் காணப்படவில்லை. மீண்டும் முயற்சிக்கவும் அல்லது பட்டியலிலிருந்து தேர்ந்தெடுக்கவும்.`,
	},
	LangHindi: {
		LangCode:        "hi-IN",
		Welcome:         "नमस्ते। मैं आर्या, सिविकगार्ड की एक एआई सामाजिक सेवा अन्वेषक हूँ। मैं आपकी रिपोर्ट की गई समस्या का दस्तावेजीकरण करने में मदद करने के लिए यहाँ हूँ। शुरू करने के लिए, कृपया नीचे अपनी पसंदीदा भाषा चुनें।",
		DistrictPrompt:  "आप किस ज़िले से रिपोर्ट कर रहे हैं?",
		PanchayatPrompt: "कृपया अपने पंचायत का नाम बताइए।",
		VillagePrompt:   "यह समस्या किस गाँव में है?",
		StreetPrompt:    "गली या क्षेत्र का नाम दर्ज करें।",
		LandmarkPrompt:  "क्या आप पास का कोई लैंडमार्क जोड़ना चाहते हैं? (वैकल्पिक)",
		TitlePrompt:     "समस्या के लिए एक छोटा शीर्षक दीजिए।",
		CategoryPrompt:  "समस्या का प्रकार चुनें। उदाहरण: सड़कें, पानी, बिजली।",
		UrgencyPrompt:   "यह समस्या कितनी ज़रूरी है? (कम / मध्यम / अधिक)",
		DescPrompt:      "कृपया समस्या का विस्तार से वर्णन करें।",
		EvidencePrompt:  "विवरण के लिए धन्यवाद। अब, कुछ सबूत जोड़ते हैं।",
		EditPrompt:      "बेशक। सुधार करते हैं। कृपया आप जो भी बदलाव करना चाहते हैं, उन्हें शामिल करते हुए, समस्या का फिर से शुरू से वर्णन करें।",
		AIError:         "मुझे खेद है, मुझे अपनी एआई सेवाओं से जुड़ने में समस्या हो रही है। कृपया कुछ देर में पुनः प्रयास करें।",
		Completed:       "इस मुद्दे को साझा करने के लिए धन्यवाद। आपकी रिपोर्ट दर्ज कर ली गई है।",
		SpeechError:     `क्षमा करें, मुझे "{0}" के लिए कोई मेल नहीं मिला। कृपया पुनः प्रयास करें या सूची से चयन करें।`,
	},
}
