package jobs

type Job interface {
	Process()
}
