package bot

// Interface strings for the languages the bot speaks. Discord has no Hebrew
// locale for command metadata, so command descriptions stay in English and
// responses follow the guild's configured language.
var translations = map[string]map[string]string{
	"he": {
		"error_title":            "שגיאה",
		"error_only_guild":       "הפקודה זמינה רק בתוך שרת.",
		"error_failed":           "הפעולה נכשלה, נסו שוב.",
		"error_unknown":          "פעולה לא מוכרת.",
		"error_missing_option":   "חסר פרמטר לפקודה.",
		"error_rate_limited":     "לאט לאט... נסו שוב בעוד רגע.",
		"alerts_title":           "התרעות פיקוד העורף",
		"alerts_added":           "הערוץ נוסף לרשימת ההתרעות.",
		"alerts_removed":         "הערוץ הוסר מרשימת ההתרעות.",
		"alerts_list":            "ערוצי ההתרעות של השרת:",
		"alerts_none":            "לא הוגדרו ערוצי התרעות.",
		"alerts_test_sent":       "התרעת ניסיון נשלחה.",
		"setup_title":            "הגדרות השרת",
		"setup_current":          "ההגדרות הנוכחיות:",
		"setup_updated":          "ההגדרות עודכנו.",
		"weather_title":          "מזג אוויר",
		"weather_disabled":       "שירות מזג האוויר כבוי.",
		"weather_city_not_found": "העיר לא נמצאה.",
		"remind_title":           "תזכורת",
		"remind_added":           "התזכורת נקבעה.",
		"remind_limit":           "הגעתם למכסת התזכורות.",
		"remind_list":            "התזכורות שלכם",
		"remind_none":            "אין לכם תזכורות פעילות.",
		"remind_canceled":        "התזכורת בוטלה.",
		"ticket_title":           "פניות",
		"ticket_opened":          "הפנייה נפתחה.",
		"ticket_closed":          "הפנייה נסגרה.",
		"ticket_limit":           "יש לכם יותר מדי פניות פתוחות.",
		"ticket_not_ticket":      "הערוץ הזה אינו פנייה פתוחה.",
		"ticket_default_subject": "ללא נושא",
		"verify_title":           "אימות",
		"verify_code_sent":       "הקוד שלכם מוכן. הריצו שוב את הפקודה עם הקוד.",
		"verify_done":            "אומתם בהצלחה!",
		"verify_expired":         "תוקף הקוד פג, בקשו קוד חדש.",
		"verify_mismatch":        "הקוד שגוי, נסו שוב.",
		"verify_none":            "אין אימות ממתין, הריצו את הפקודה ללא קוד.",
		"report_title":           "דוח פעילות",
		"report_desc":            "סיכום אירועי השרת בתקופה.",
		"audit_title":            "יומן אירועים",
		"audit_level":            "רמה",
		"audit_details":          "פרטים",
		"field_event":            "אירוע",
		"field_user":             "משתמש",
		"field_channel":          "ערוץ",
		"field_channels":         "ערוצים",
		"field_delivered":        "נמסרו",
		"field_role":             "תפקיד",
		"field_category":         "קטגוריה",
		"field_city":             "עיר",
		"field_temp":             "טמפרטורה",
		"field_wind":             "רוח",
		"field_conditions":       "תנאים",
		"field_when":             "מתי",
		"field_code":             "קוד",
		"field_subject":          "נושא",
		"field_language":         "שפה",
		"field_total":            "סה\"כ",
		"field_info":             "מידע",
		"field_warn":             "אזהרות",
		"field_crit":             "חמורים",
		"field_top_events":       "אירועים בולטים",
		"value_system":           "מערכת",
		"value_not_set":          "לא הוגדר",
		"footer_brand":           "שומר",
	},
	"en": {
		"error_title":            "Error",
		"error_only_guild":       "This command only works inside a server.",
		"error_failed":           "The operation failed, try again.",
		"error_unknown":          "Unknown action.",
		"error_missing_option":   "A required option is missing.",
		"error_rate_limited":     "Slow down, try again in a moment.",
		"alerts_title":           "Home Front Command Alerts",
		"alerts_added":           "Channel added to the alert list.",
		"alerts_removed":         "Channel removed from the alert list.",
		"alerts_list":            "Alert channels for this server:",
		"alerts_none":            "No alert channels configured.",
		"alerts_test_sent":       "Test alert sent.",
		"setup_title":            "Server Setup",
		"setup_current":          "Current settings:",
		"setup_updated":          "Settings updated.",
		"weather_title":          "Weather",
		"weather_disabled":       "The weather service is disabled.",
		"weather_city_not_found": "City not found.",
		"remind_title":           "Reminder",
		"remind_added":           "Reminder scheduled.",
		"remind_limit":           "You have reached your reminder limit.",
		"remind_list":            "Your reminders",
		"remind_none":            "You have no active reminders.",
		"remind_canceled":        "Reminder canceled.",
		"ticket_title":           "Tickets",
		"ticket_opened":          "Ticket opened.",
		"ticket_closed":          "Ticket closed.",
		"ticket_limit":           "You have too many open tickets.",
		"ticket_not_ticket":      "This channel is not an open ticket.",
		"ticket_default_subject": "No subject",
		"verify_title":           "Verification",
		"verify_code_sent":       "Your code is ready. Run the command again with the code.",
		"verify_done":            "You are verified!",
		"verify_expired":         "The code expired, request a new one.",
		"verify_mismatch":        "Wrong code, try again.",
		"verify_none":            "No pending verification, run the command without a code.",
		"report_title":           "Activity Report",
		"report_desc":            "Summary of server events for the period.",
		"audit_title":            "Event Log",
		"audit_level":            "Level",
		"audit_details":          "Details",
		"field_event":            "Event",
		"field_user":             "User",
		"field_channel":          "Channel",
		"field_channels":         "Channels",
		"field_delivered":        "Delivered",
		"field_role":             "Role",
		"field_category":         "Category",
		"field_city":             "City",
		"field_temp":             "Temperature",
		"field_wind":             "Wind",
		"field_conditions":       "Conditions",
		"field_when":             "When",
		"field_code":             "Code",
		"field_subject":          "Subject",
		"field_language":         "Language",
		"field_total":            "Total",
		"field_info":             "Info",
		"field_warn":             "Warnings",
		"field_crit":             "Critical",
		"field_top_events":       "Top events",
		"value_system":           "System",
		"value_not_set":          "not set",
		"footer_brand":           "Shomer",
	},
}

func (b *Bot) t(lang, key string) string {
	if table, ok := translations[lang]; ok {
		if value, ok := table[key]; ok {
			return value
		}
	}
	if value, ok := translations["en"][key]; ok {
		return value
	}
	return key
}
