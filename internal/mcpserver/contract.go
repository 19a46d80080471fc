package mcpserver

// PayloadFormatContract describes the persisted payload shape that LLM
// consumers must follow when writing group records.
const PayloadFormatContract = `# Daybook Payload Format Contract

Every group is persisted as one JSON file holding a two-element array:

` + "```" + `json
[
  { "max_priority": 10 },
  [
    { "text": "Buy milk", "status": 1, "last_modified": "2025-01-20T09:30:00+01:00" },
    { "text": "Call Alice", "subject": "errands", "priority": 2 }
  ]
]
` + "```" + `

Element 0 is the group properties object, element 1 the ordered note list.
Legacy files may hold a single-element array (just the note list); those
read as if the properties were all defaults.

## Record fields

- ` + "`" + `text` + "`" + ` (string, REQUIRED to carry data) – the primary note text. A record
  with blank text is a gap and is dropped on save.
- ` + "`" + `subject` + "`" + ` (string) – optional subject line.
- ` + "`" + `extended` + "`" + ` (string) – optional extended text.
- ` + "`" + `last_modified` + "`" + ` (RFC 3339 with zone) – set when the record changes.
- ` + "`" + `priority` + "`" + ` (int) – to-do priority, 0 means unset.
- ` + "`" + `status` + "`" + ` (int) – 0 none, 1 open, 2 started, 3 done, 4 deferred.
- ` + "`" + `icon_index` + "`" + ` (int) – display icon, 0 means default.
- ` + "`" + `linked_date` + "`" + ` (string, 2006-01-02) – optional linked calendar date.

## Rules

1. **Order matters.** A record's identity is its position in the list.
2. **Never renumber on read.** Write back the list in the order given,
   minus blank records.
3. Calendar groups (day/month/year notes) are addressed by date; named
   groups (goals, events, todo lists, logs, milestones, search results)
   by their name within the kind.
4. An empty list is valid for named kinds (the group keeps a placeholder
   file); calendar kinds with no records keep no file at all.
`
