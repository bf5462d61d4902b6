package prompts

// Plain prompts are used when the request carries no code to classify.

const bugPlainTemplate = "You are a Python expert. Review the following code and list any bugs, errors, or bad practices with explanations:\n\n{code}"

const optimizationPlainTemplate = "You are a senior Python engineer. Refactor the code below to make it cleaner, more readable, and more efficient:\n\n{code}"

const explanationPlainTemplate = "You're an experienced Python instructor.Explain the following code **line by line** in simple, beginner-friendly language:\n\n{code}"

const unitTestPlainTemplate = "You are a Senior Python Developer. \nWrite Unit test code for the following python code:\n\n{code}"

const conversationalPlainTemplate = "You are an expert Python developer.\n" +
	"Here is a Python code snippet:\n\n{code}\n\n" +
	"Previous Conversation:\n{history}\n\n" +
	"Now answer this question about the code:\n\n{question}"

const edgeCasePlainTemplate = `You are a senior QA engineer and testing expert specializing in finding edge cases that break code.

Code to analyze:
{code}

Detected risk areas: {risk_analysis}
Function signatures: {function_signatures}

Generate comprehensive edge cases in the following categories:

## 1. INPUT EDGE CASES
- Empty inputs ([], "", None, 0)
- Single element inputs
- Very large inputs (performance stress)
- Invalid types
- Boundary values (min/max integers, empty strings)

## 2. ERROR CONDITIONS
- Null pointer exceptions
- Index out of bounds
- Division by zero
- File not found
- Network timeouts
- Invalid permissions

## 3. BUSINESS LOGIC EDGE CASES
- Invalid user states
- Expired sessions/tokens
- Insufficient resources
- Concurrent access issues
- Data corruption scenarios

## 4. PERFORMANCE EDGE CASES
- Memory exhaustion
- CPU intensive operations
- Large dataset processing
- Infinite loops potential
- Stack overflow conditions

For each edge case, provide:
1. **Test Case Name**: Descriptive name
2. **Input Example**: Specific test data
3. **Expected Behavior**: What should happen
4. **Potential Failure**: How it might break
5. **Pytest Code**: Executable test case

Format as executable Python test cases using pytest with assertions.`
