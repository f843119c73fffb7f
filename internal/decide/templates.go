package decide

// Fixed email templates per performance bucket. The body text is part of
// the outreach-import contract downstream and must stay byte-stable.

const signature = "Best regards,\n" +
	"Roman Sidorin\n" +
	"DITS.AGENCY"

const (
	subjectLow  = "Quick note about your website performance"
	subjectMid  = "Website performance improvement opportunity"
	subjectHigh = "Reaching 90+ PageSpeed score for your website"
)

const bodyLow = "I reviewed your website using Google PageSpeed Insights and noticed that the mobile performance score is extremely low.\n" +
	"This negatively affects search visibility, organic traffic, and significantly increases advertising costs if you are running paid campaigns.\n\n" +
	"We can fix this within 2–3 days, with an estimated cost of $400–600.\n" +
	"If this is interesting for you, just reply to this email.\n\n" +
	signature

const bodyMid = "I reviewed your website via Google PageSpeed Insights and noticed that the mobile performance is quite weak.\n" +
	"This can negatively impact search visibility, organic traffic, and increase advertising costs when running paid campaigns.\n\n" +
	"We can improve this within 2–3 days, with a budget of $400–600.\n" +
	"If you’re interested, simply reply to this email.\n\n" +
	signature

const bodyHigh = "Your website already shows a fairly good mobile performance score.\n" +
	"However, if your goal is to reach 90+, we can help you achieve this.\n\n" +
	"In most cases, this takes 2–3 days and costs $400–800.\n" +
	"If this sounds interesting, just reply to this email.\n\n" +
	signature

// greeting returns the salutation line that opens every template body.
func greeting(name string) string {
	if name == "" {
		return "Hi there,\n\n"
	}
	return "Hi " + name + ",\n\n"
}
