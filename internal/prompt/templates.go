package prompt

import "text/template"

const cvSchemaHint = `{
  "personal_info": {
    "full_name": "string",
    "title": "string",
    "location": "string",
    "phone": "string",
    "email": "string",
    "portfolio": "string (omit if not relevant)",
    "github": "string (omit if not relevant)",
    "linkedin": "string",
    "other_links": ["string"]
  },
  "summary": "string",
  "experience": [
    {"title": "string", "company": "string", "location": "string", "period": "string", "responsibilities": ["string"]}
  ],
  "education": [
    {"degree": "string", "institution": "string", "period": "string", "details": ["string"]}
  ]
}`

const letterSchemaHint = `{
  "greeting": "string",
  "body": ["paragraph", "paragraph", "paragraph"],
  "closing": "string",
  "signature": "string"
}`

const sharedCVRules = `Rules:
- Use only facts present in the candidate profile. Never invent employers, titles, dates, degrees, skills or metrics.
- Select and reorder experience and responsibilities so the most relevant to the job come first; rephrase bullets with the job's keywords where they are truthful.
- Links: for software, IT or engineering roles include "github" and omit "portfolio"; for design or creative roles include "portfolio" (and a Behance link under "other_links" when the profile has one) and omit "github". Always include "linkedin" when available.
- Keep every responsibility to one line. Do not use Markdown inside JSON strings.
- Respond with ONLY the JSON object. No prose, no explanations, no code fences.`

const atsCVTemplate = `You are an expert CV writer producing an ATS-friendly, single-column CV tailored to one job posting.

Job posting (source: {{.JobSource}}):
"""
{{.JobDescription}}
"""

Candidate profile (JSON):
{{.Profile}}

Return a JSON object with exactly this structure:
{{.CVSchema}}

` + sharedCVRules + `
`

const twoColumnCVTemplate = `You are an expert CV writer producing a compact two-column CV tailored to one job posting. The left column carries contact details and the title line; the right column carries summary, experience and education.

Job posting (source: {{.JobSource}}):
"""
{{.JobDescription}}
"""

Candidate profile (JSON):
{{.Profile}}

Return a JSON object with exactly this structure:
{{.CVSchema}}

Layout guidance:
- Put the three skills most relevant to the job into "personal_info.title", separated by " · ".
- Keep the summary under 60 words and at most four responsibilities per role.

` + sharedCVRules + `
`

var letterTmpl = template.Must(template.New("letter").Parse(`You are writing a concise, specific cover letter in English for the job posting below, on behalf of the candidate whose profile follows.

Job posting (source: {{.JobSource}}):
"""
{{.JobDescription}}
"""

Candidate profile (JSON):
{{.Profile}}

Return a JSON object with exactly this structure:
{{.LetterSchema}}

Rules:
- Three or four body paragraphs. Refer to the company and role by name when the posting states them.
- Use only facts present in the candidate profile. Never invent experience or achievements.
- "signature" is the candidate's full name.
- Respond with ONLY the JSON object. No prose, no explanations, no code fences.
`))

var translationTmpl = template.Must(template.New("translation").Parse(`Translate the following cover letter into {{.TargetLanguage}}.

Rules:
- Keep the Markdown structure and paragraph breaks exactly as in the source.
- Keep personal names, company names, product names, email addresses, phone numbers and dates unchanged.
- Use a formal, professional register.
- Respond with the translated Markdown only. No commentary and no code fences.

Source:
"""
{{.SourceText}}
"""
`))

var jobInfoTmpl = template.Must(template.New("job_info").Parse(`Extract the job title and the hiring company's name from the job posting below.

Job posting:
"""
{{.JobDescription}}
"""

Respond with ONLY a JSON object of the form {"job_title": "string", "company_name": "string"}. Use "Job" or "Company" when a value is not stated.
`))
