// Package validate checks login and registration form input before it reaches
// the session store. Violations come back as a FieldErrors map keyed by form
// field so the CLI can print them next to the prompt that produced them.
package validate
