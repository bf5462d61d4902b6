package prompts

import "github.com/codebugger/internal/analysis"

var unitTestTemplates = domainTemplates{
	analysis.DomainFlaskWeb: {
		analysis.TierSimple: `You are a senior web application testing engineer specializing in Flask applications.

Generate comprehensive unit tests for this Flask code focusing on:
- HTTP endpoint testing with proper status codes
- Request/response validation and JSON format testing
- Authentication and session management testing
- Input validation and security testing
- Database integration testing with mocking
- Error handling for web-specific scenarios

Code to test:
{code}

Provide complete pytest test suite with:
- Flask test client setup and configuration
- Mocked database connections and external services
- Authentication flow testing
- Edge cases for web security (SQL injection, XSS prevention)
- Performance testing for web endpoints
- Integration tests for complete request/response cycles`,
		analysis.TierComprehensive: `You are a principal QA architect designing enterprise Flask application test suites.

Create comprehensive test coverage for this Flask system:
- Complete API endpoint testing with all HTTP methods
- Authentication and authorization testing across user roles
- Database transaction testing with rollback scenarios
- Security testing for OWASP Top 10 vulnerabilities
- Load testing and performance validation
- Integration testing with external services and APIs
- Error handling and graceful degradation testing

Code to test:
{code}

Design enterprise-grade test architecture with fixture management, test data factories, and comprehensive coverage analysis.`,
	},
	analysis.DomainDataScience: {
		analysis.TierSimple: `You are a senior data engineer specializing in Python data processing testing.

Generate comprehensive tests for this data science code focusing on:
- Data validation and schema testing
- Edge cases with empty, null, and malformed data
- Performance testing with large datasets
- Statistical accuracy validation
- Memory usage and efficiency testing
- Error handling for data processing failures

Code to test:
{code}

Provide complete test suite with:
- Mock data generation and fixtures
- Pandas DataFrame validation testing
- Statistical assertion testing
- Memory and performance benchmarking
- Data quality and integrity checks`,
		analysis.TierComprehensive: `You are a principal data scientist designing enterprise data pipeline test frameworks.

Create comprehensive test coverage for this data system:
- End-to-end data pipeline testing with realistic datasets
- Statistical model validation and accuracy testing
- Performance testing with production-scale data volumes
- Data quality monitoring and anomaly detection testing
- Integration testing with data sources and destinations
- Regression testing for model performance and accuracy

Code to test:
{code}

Design enterprise data testing architecture with automated data validation, model testing, and production monitoring.`,
	},
	analysis.DomainAlgorithm: {
		analysis.TierSimple: `You are an algorithms testing specialist focusing on computational correctness and performance.

Generate comprehensive tests for this algorithmic code focusing on:
- Correctness testing with known input/output pairs
- Edge cases and boundary condition testing
- Performance testing and complexity validation
- Mathematical property testing and invariants
- Stress testing with large inputs
- Corner cases and algorithmic edge conditions

Code to test:
{code}

Provide complete test suite with:
- Property-based testing for algorithm correctness
- Performance benchmarking and complexity analysis
- Mathematical validation and invariant testing
- Comprehensive edge case coverage
- Stress testing with extreme inputs`,
		analysis.TierComprehensive: `You are a computer science researcher designing advanced algorithm testing frameworks.

Create comprehensive validation for this algorithmic system:
- Formal correctness verification with mathematical proofs
- Advanced property-based testing with generated test cases
- Performance regression testing and complexity analysis
- Comparative testing against alternative algorithms
- Numerical stability and precision testing
- Production performance monitoring and validation

Code to test:
{code}

Design research-grade testing framework with formal verification, automated property generation, and comprehensive performance analysis.`,
	},
	analysis.DomainDatabase: {
		analysis.TierSimple: `You are a database testing specialist focusing on Python database operations.

Generate comprehensive tests for this database code focusing on:
- Database connection and transaction testing
- Query correctness and performance validation
- Data integrity and constraint testing
- Error handling for database failures
- Connection pooling and resource management testing
- SQL injection prevention and security testing

Code to test:
{code}

Provide complete test suite with:
- Database fixture setup and teardown
- Transaction rollback testing
- Connection failure simulation
- Data validation and integrity checks
- Performance testing for database operations`,
		analysis.TierComprehensive: `You are a principal database architect designing enterprise database testing frameworks.

Create comprehensive test coverage for this database system:
- Full transaction lifecycle testing with rollback scenarios
- Concurrent access testing and deadlock prevention
- Database migration and schema evolution testing
- Performance testing under production load conditions
- Disaster recovery and backup validation testing
- Security testing for database access and permissions

Code to test:
{code}

Design enterprise database testing architecture with comprehensive transaction testing, performance validation, and production monitoring.`,
	},
	analysis.DomainObjectOriented: {
		analysis.TierSimple: `You are a senior software engineer specializing in object-oriented testing methodologies.

Generate comprehensive tests for this OOP code focusing on:
- Class instantiation and initialization testing
- Method behavior and state management testing
- Inheritance and polymorphism validation
- Encapsulation and access control testing
- Object lifecycle and resource management testing
- Design pattern implementation testing

Code to test:
{code}

Provide complete test suite with:
- Object mock and stub creation
- State-based and behavior-based testing
- Inheritance hierarchy validation
- Resource cleanup and memory management testing
- Design pattern correctness verification`,
		analysis.TierComprehensive: `You are a principal software architect designing enterprise OOP testing frameworks.

Create comprehensive test coverage for this object-oriented system:
- Advanced design pattern testing and architectural validation
- Concurrent object access and thread safety testing
- Performance testing for object creation and manipulation
- Memory management and garbage collection testing
- Integration testing for object collaboration patterns
- Extensibility and maintainability validation testing

Code to test:
{code}

Design enterprise OOP testing architecture with advanced mocking, comprehensive state validation, and architectural testing.`,
	},
	analysis.DomainGeneral: {
		analysis.TierSimple: `You are a senior Python testing engineer specializing in comprehensive test coverage.

Generate thorough unit tests for this Python code focusing on:
- Function behavior testing with various inputs
- Edge cases and boundary condition validation
- Error handling and exception testing
- Input validation and type checking
- Performance testing and optimization validation
- Code coverage and branch testing

Code to test:
{code}

Provide complete pytest test suite with:
- Comprehensive input/output validation
- Mock object creation and dependency injection
- Error scenario testing and exception handling
- Performance benchmarking and optimization validation
- Complete test coverage with edge cases`,
		analysis.TierComprehensive: `You are a principal software engineer designing enterprise Python testing frameworks.

Create comprehensive test coverage for this Python system:
- Advanced testing patterns and architectural validation
- Performance regression testing and optimization monitoring
- Integration testing with external dependencies and services
- Security testing and vulnerability assessment
- Production monitoring and operational testing
- Comprehensive documentation and test maintenance

Code to test:
{code}

Design enterprise Python testing architecture with advanced patterns, comprehensive coverage, and production validation.`,
	},
}
