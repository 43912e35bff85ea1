// Package validate runs the deckbuilding rule checks against a resolved
// deck. Checks are independent and ordered; they never short-circuit each
// other, so a deck reports every problem it has at once. Rule violations are
// values, not errors: an invalid deck still resolves and displays.
package validate
