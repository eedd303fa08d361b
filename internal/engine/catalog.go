package engine

// ResponseCatalog is a static two-level lookup of reply templates:
// category → subtype → ordered list of template variants. Templates are
// author-authored data, never generated at runtime. Placeholders use the
// {name} form and are filled by the ResponseSelector.
type ResponseCatalog struct {
	entries map[string]map[string][]string
}

// NewResponseCatalog returns the catalog with the built-in templates.
func NewResponseCatalog() *ResponseCatalog {
	return &ResponseCatalog{entries: catalogEntries}
}

// Variants returns the ordered template list for a (category, subtype) key
// and true when the key exists.
func (c *ResponseCatalog) Variants(category, subtype string) ([]string, bool) {
	sub, ok := c.entries[category]
	if !ok {
		return nil, false
	}
	variants, ok := sub[subtype]
	if !ok || len(variants) == 0 {
		return nil, false
	}
	return variants, true
}

var catalogEntries = map[string]map[string][]string{
	"scope": {
		"out-of-scope": {
			"I'm here to help with courses and learning. That one is outside what I can answer, but I'd be happy to help you find a course or plan what to learn next!",
			"That's a bit outside my area. I focus on course discovery and learning advice. Is there a course or topic you'd like to explore?",
			"I can only help with questions about courses and learning. Want me to suggest a course or explain how to get started with a topic?",
		},
	},
	"missing-context": {
		"course-reference": {
			"It sounds like you're asking about a specific course, but I don't see one selected. Could you open a course page or tell me the course name?",
			"I'd love to help with that! Which course do you mean? You can select one from the catalog or just give me its name.",
			"To answer that I need to know which course you're asking about. Please pick a course first, or name it and I'll take it from there.",
		},
		"interest": {
			"Happy to point you somewhere! What topic are you interested in learning? For example web development, data science, or design.",
			"Great question. To recommend the right starting point, tell me what you'd like to learn. Any topic works, like programming, marketing, or photography.",
			"Let's narrow it down. What subject interests you most? Once I know your interest I can suggest where to begin.",
		},
		"interest-placeholder": {
			"I'd need the actual topic to help. What are you interested in learning? Just name the subject, like web development or data analysis.",
			"Could you tell me the specific topic? Replace \"my interest\" with the actual subject and I'll suggest courses for it.",
		},
	},
	"interest": {
		"stated": {
			"{interest} is a great choice! Are you just getting started, or do you already have some experience? That helps me point you to the right level.",
			"Nice, {interest} it is. What's your goal with it, and would you call yourself a beginner, intermediate, or advanced learner?",
			"Good pick! There are courses on {interest} at several levels. Tell me your current experience and what you want to achieve, and I'll narrow it down.",
		},
	},
	"decision": {
		"default": {
			"That's your call to make, but here's what usually matters: whether \"{courseName}\" matches your current level ({level}), whether you can commit {duration}, and whether the topics excite you. If most of those line up, it's probably a good fit.",
			"I can't decide for you, but I can help you weigh it. Consider your experience versus the {level} level, the {duration} time commitment, and how \"{courseName}\" fits your goals. How do those feel to you?",
			"Only you can answer that one! Things worth checking for \"{courseName}\": the difficulty ({level}), the time needed ({duration}), and whether the description matches what you want to learn.",
		},
	},
	"comparison": {
		"with-course": {
			"To compare \"{courseName}\" with another course, look at the level ({level}), duration ({duration}), and covered topics side by side. Which other course did you have in mind?",
			"Good idea to compare! \"{courseName}\" is a {level} course in {category} taking {duration}. Tell me the other course and I'll line up the same facts.",
		},
		"without-course": {
			"Happy to help compare courses! Tell me the two courses you're weighing and what matters most to you, like difficulty, duration, or topic depth.",
			"Comparing is a smart way to choose. Which courses are you deciding between? I can walk through their levels, lengths, and content with you.",
		},
	},
	"course-specific": {
		"suitability-beginner": {
			"\"{courseName}\" is a beginner level course, so it assumes little or no prior experience. If you're new to {category}, it should be a comfortable starting point.",
			"Good news: \"{courseName}\" is aimed at beginners. You don't need prior background in {category} to follow along.",
		},
		"suitability-intermediate": {
			"\"{courseName}\" is an intermediate level course, so some familiarity with {category} basics will help you get the most out of it.",
			"This one sits at the intermediate level. If you've covered the fundamentals of {category}, \"{courseName}\" should be a good step up.",
		},
		"suitability-advanced": {
			"\"{courseName}\" is an advanced course, so it expects solid experience with {category}. If you're confident in the fundamentals, you're likely ready.",
			"Heads up: \"{courseName}\" is advanced material. It's best suited to learners who already work comfortably with {category} topics.",
		},
		"prerequisites": {
			"\"{courseName}\" lists these prerequisites: {prerequisites}. If you're comfortable with those, you're ready to start.",
			"Before taking \"{courseName}\" you should know: {prerequisites}. Brush up on anything unfamiliar and you'll be in good shape.",
			"The prerequisites for \"{courseName}\" are: {prerequisites}.",
		},
		"prerequisites-none": {
			"\"{courseName}\" has no listed prerequisites. You can start right away!",
			"Nothing required up front. \"{courseName}\" doesn't list any prerequisites, so it's open to everyone.",
		},
		"next-steps": {
			"After finishing \"{courseName}\", a natural next move is a more advanced course in {category}, or a project that applies what you learned. Want suggestions?",
			"Once you complete \"{courseName}\", look for the next level in {category} or branch into a related topic. Practicing on a real project also cements the material.",
		},
		"duration": {
			"\"{courseName}\" takes about {duration} to complete. Of course, you can go at your own pace.",
			"Plan for roughly {duration} with \"{courseName}\". Spreading it over a few sessions a week works well for most learners.",
		},
		"content": {
			"\"{courseName}\" covers: {description}",
			"Here's what \"{courseName}\" is about: {description} It's a {level} course in {category}.",
		},
	},
	"guidance": {
		"greeting": {
			"Hi there! I'm your course assistant. Ask me about any course, or tell me what you'd like to learn and I'll help you find a good fit.",
			"Hello! Looking for a course or wondering where to start? I'm happy to help with anything learning related.",
			"Hey! I can help you explore courses, check prerequisites, or plan what to learn next. What's on your mind?",
		},
		"filter-help": {
			"You can narrow the catalog using the category and level filters, or search by keyword. Tell me a topic and I'll point you to matching courses.",
			"To find courses, try filtering by category or difficulty level, or just tell me what you're after and I'll suggest some.",
		},
		"beginner": {
			"Starting out is the best part! Look for courses marked beginner level. They assume no prior experience. What topic would you like to begin with?",
			"If you're new, pick a beginner level course in a topic you enjoy. Tell me the subject and I'll suggest a gentle entry point.",
		},
		"comparison": {
			"Happy to help compare courses! Tell me the two courses you're weighing and what matters most to you, like difficulty, duration, or topic depth.",
			"Comparing is a smart way to choose. Which courses are you deciding between? I can walk through their levels, lengths, and content with you.",
		},
		"roadmap": {
			"A good learning path starts with a beginner course, then builds through intermediate material with projects in between. Tell me your target topic or role and I'll sketch a path.",
			"Roadmaps work best around a goal. What do you want to become or build? From there we can pick a starting course and the steps after it.",
		},
		"difficulty": {
			"Courses come in three levels. Beginner assumes no experience, intermediate expects the basics, and advanced is for confident practitioners. Not sure where you fit? Tell me what you already know.",
			"Difficulty levels are a rough guide: beginner for newcomers, intermediate once you know the fundamentals, advanced for deep experience. I can help you judge which fits you.",
		},
	},
	"fallback": {
		"default": {
			"I'm not quite sure what you're asking, but I'm here to help with courses and learning. Try asking about a course, a topic, or where to start.",
			"Hmm, I didn't catch that. You can ask me things like \"What should I learn first?\" or questions about a specific course.",
			"Sorry, I didn't follow. I can help with course recommendations, prerequisites, difficulty levels, and learning paths. What would you like to know?",
		},
	},
}
