package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/movie --output domain/movie --outpkg moviemock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Lookup --dir ../domain/book --output domain/book --outpkg bookmock --filename lookup_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name PublishRepository --dir ../domain/event --output domain/event --outpkg eventmock --filename publish_repository_mock.go
