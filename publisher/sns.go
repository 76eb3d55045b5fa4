package publisher

import (
	"encoding/json"

	"github.com/F3NN3X/vbz-departures-service/dlog"
	"github.com/F3NN3X/vbz-departures-service/model"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/sns"
	"github.com/aws/aws-sdk-go/service/sns/snsiface"
	"github.com/pkg/errors"
)

// SNSPublisher fans each snapshot out to an SNS topic as JSON, for
// consumers that want the feed without polling the API themselves.
type SNSPublisher struct {
	Logger      dlog.Logger
	SNSClient   snsiface.SNSAPI
	SNSTopicARN *string
}

func (p *SNSPublisher) Publish(snapshot model.Snapshot) error {
	dlog.OrNop(p.Logger).Debugf("publish snapshot to SNS")

	snapshotJSON, err := json.Marshal(&snapshot)
	if err != nil {
		return errors.Wrap(err, "cannot marshal JSON from snapshot")
	}

	if _, err := p.SNSClient.Publish(&sns.PublishInput{
		Message:  aws.String(string(snapshotJSON)),
		TopicArn: p.SNSTopicARN,
	}); err != nil {
		return errors.Wrapf(err, "cannot publish message to SNS topic `%s`", aws.StringValue(p.SNSTopicARN))
	}

	return nil
}
