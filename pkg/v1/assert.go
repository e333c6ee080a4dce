package v1

import "fmt"

// TestError represents a controlled test failure.
type TestError struct {
	Message string
}

func (e TestError) Error() string {
	return e.Message
}

// Fail fails the current test stage with a message.
// It uses panic with TestError to stop execution, which is caught by the Stage runner.
func Fail(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	Log(LogTypeError, "Assertion FAILED", msg)
	panic(TestError{Message: msg})
}

// Assert checks if the condition is true. If not, it fails the test stage.
func Assert(condition bool, format string, args ...interface{}) {
	if !condition {
		Fail(format, args...)
	}
}

// AssertNoError asserts that the error is nil.
func AssertNoError(err error) {
	if err != nil {
		Fail("Unexpected error: %v", err)
	}
}

// ExpectEqual fails the stage with an equality report when actual differs from expected.
func ExpectEqual(label string, expected, actual interface{}) {
	RecordAction(fmt.Sprintf("Expect Equal: %s", label), func() { ExpectEqual(label, expected, actual) })
	if IsDryRun() {
		return
	}
	if !valuesEqual(actual, expected) {
		Fail("%s: expected %q, got %q", label, fmt.Sprint(expected), fmt.Sprint(actual))
	}
	Logf(LogTypeExpect, "%s == %v - PASSED", label, expected)
}

// ExpectCondition fails the stage unless actual satisfies condition against expected.
func ExpectCondition(label string, actual interface{}, condition string, expected interface{}) {
	if IsDryRun() {
		return
	}
	if !evaluateCondition(actual, condition, expected) {
		Fail("%s: expected value %s %v, got %v", label, condition, expected, actual)
	}
	Logf(LogTypeExpect, "%s %s %v - PASSED", label, condition, expected)
}

// Catch runs fn and turns a stage failure raised inside it into an error.
// It lets stage helpers be used from code that is not running a stage.
func Catch(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			te, ok := r.(TestError)
			if !ok {
				panic(r)
			}
			err = te
		}
	}()
	fn()
	return nil
}
