package classifier

import "fmt"

const systemPrompt = "You are a strict JSON classifier."

const promptTemplate = `You are an expert support ticket classifier. Analyze the following support ticket description and classify it into the appropriate category and priority level.

Ticket Description:
%s

Categories:
- billing: Issues related to payments, invoices, subscriptions, refunds, pricing
- technical: Technical problems, bugs, errors, software issues, integration problems
- account: Account access, login issues, password resets, account settings, profile updates
- general: Questions, feature requests, feedback, or anything that doesn't fit the above

Priority Levels:
- critical: System down, security breach, data loss, complete service outage, revenue impact
- high: Major functionality broken, significant business impact, many users affected
- medium: Important but not urgent, moderate impact, workarounds available
- low: Minor issues, cosmetic problems, feature requests, general questions

Respond with ONLY a JSON object in this exact format (no markdown, no explanation):
{"category": "one_of_the_categories", "priority": "one_of_the_priorities"}

Examples:
Description: "I can't log into my account, tried resetting password but didn't receive email"
Response: {"category": "account", "priority": "high"}

Description: "The dashboard is loading very slowly, takes 30+ seconds"
Response: {"category": "technical", "priority": "medium"}

Description: "I was charged twice for my subscription this month"
Response: {"category": "billing", "priority": "high"}

Description: "How do I export my data?"
Response: {"category": "general", "priority": "low"}

Now classify this ticket:
`

func buildUserPrompt(description string) string {
	return fmt.Sprintf(promptTemplate, description)
}
