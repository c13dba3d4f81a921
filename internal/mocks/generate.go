package mocks

//go:generate mockery --name RecordSource --srcpkg github.com/tally-lab/project-tally/internal/analytics --output ./analytics --outpkg analyticsmocks --with-expecter
//go:generate mockery --name HealthChecker --srcpkg github.com/tally-lab/project-tally/internal/server --output ./server --outpkg servermocks --with-expecter
